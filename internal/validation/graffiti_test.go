package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "Valid", content: "hola muro"},
		{name: "Empty", content: "", wantErr: true},
		{name: "Whitespace Only", content: "   \n\t", wantErr: true},
		{name: "At Limit", content: strings.Repeat("a", 500)},
		{name: "Over Limit", content: strings.Repeat("a", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(200))
	assert.NoError(t, ValidateAmount(0.01))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-5))
	assert.Error(t, ValidateAmount(math.NaN()))
	assert.Error(t, ValidateAmount(math.Inf(1)))
}

func TestValidateWallet(t *testing.T) {
	valid := "T" + strings.Repeat("9", 33)

	assert.NoError(t, ValidateWallet("trx", valid))
	assert.NoError(t, ValidateWallet("usdt", valid))
	assert.NoError(t, ValidateWallet("busd", ""))
	assert.Error(t, ValidateWallet("trx", "0x1234"))
	assert.Error(t, ValidateWallet("trx", "Tshort"))
	assert.Error(t, ValidateWallet("eth", valid))
}
