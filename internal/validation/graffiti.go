// Package validation holds input validation rules shared by handlers and
// services.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"muro/internal/models"
)

var trxWalletRegex = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)

// ValidateContent validates graffiti message text.
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("content cannot be empty")
	}
	if len(trimmed) > models.MaxContentLength {
		return fmt.Errorf("content cannot exceed %d characters", models.MaxContentLength)
	}
	return nil
}

// ValidateAmount validates a payment amount before it is sent to the gateway.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount must be a finite number")
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// ValidateWallet validates a crypto wallet address for the given network.
// TRON-network addresses (TRX, and TRC-20 USDT/BUSD) share the base58check
// format starting with T.
func ValidateWallet(network, address string) error {
	if address == "" {
		// Clearing a wallet address is allowed.
		return nil
	}
	switch network {
	case "trx", "usdt", "busd":
		if !trxWalletRegex.MatchString(address) {
			return fmt.Errorf("%s wallet must be a valid TRON address", network)
		}
	default:
		return fmt.Errorf("unknown wallet network %q", network)
	}
	return nil
}
