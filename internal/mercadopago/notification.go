package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ResourceID is the id of the resource a notification points at. Mercado Pago
// sends it as a JSON string or number depending on the notification revision,
// so both are accepted.
type ResourceID string

// UnmarshalJSON accepts string and numeric ids.
func (r *ResourceID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ResourceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("mercadopago: resource id is neither string nor number: %s", data)
	}
	*r = ResourceID(n.String())
	return nil
}

func (r ResourceID) String() string { return string(r) }

// Notification is the body of a webhook delivery.
type Notification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID ResourceID `json:"id"`
	} `json:"data"`
}

// IsPayment reports whether the notification references a payment resource
// that should be looked up.
func (n *Notification) IsPayment() bool {
	return n.Type == "payment" && n.Data.ID != ""
}

// VerifySignature checks the x-signature header of a webhook delivery against
// the configured secret. Mercado Pago signs the manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;" with HMAC-SHA256; the
// header carries "ts=<ts>,v1=<hex digest>".
func VerifySignature(secret, signatureHeader, requestID string, dataID ResourceID) bool {
	if secret == "" {
		return true
	}

	var ts, v1 string
	for _, part := range strings.Split(signatureHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID.String()), requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(v1))
}
