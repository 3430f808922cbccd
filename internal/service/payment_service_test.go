package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreference_ValidatesBeforeGatewayCall(t *testing.T) {
	// The fake gateway would succeed; validation must reject first.
	svc := NewPaymentService(&fakeGateway{})

	_, err := svc.CreatePreference(context.Background(), CreatePreferenceInput{
		Title:  "Graffiti",
		Amount: 0,
	})
	assertValidationError(t, err)

	_, err = svc.CreatePreference(context.Background(), CreatePreferenceInput{
		Title:  "Graffiti",
		Amount: -100,
	})
	assertValidationError(t, err)
}

func TestCreatePreference_Success(t *testing.T) {
	svc := NewPaymentService(&fakeGateway{})

	result, err := svc.CreatePreference(context.Background(), CreatePreferenceInput{
		Amount:     200,
		GraffitiID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-test", result.Preference.ID)
	assert.NotEmpty(t, result.Preference.InitPoint)
	assert.NotEmpty(t, result.Raw)
}
