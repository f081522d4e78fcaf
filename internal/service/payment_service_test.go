package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayClientCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body createIntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(2500), body.Amount)
		assert.Equal(t, "usd", body.Currency)
		assert.Equal(t, "u1", body.Metadata["user_id"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PaymentIntent{
			ID:           "pi_1",
			Status:       "requires_payment_method",
			ClientSecret: "pi_1_secret",
		})
	}))
	defer srv.Close()

	svc := NewPaymentService(NewGatewayClient(srv.URL, "sk_test"))

	intent, err := svc.CreateIntent(context.Background(), "u1", 2500, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
}

func TestGatewayClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewPaymentService(NewGatewayClient(srv.URL, "sk_test"))

	_, err := svc.CreateIntent(context.Background(), "u1", 2500, "")
	require.ErrorIs(t, err, ErrPayment)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(SandboxGateway{})

	_, err := svc.CreateIntent(context.Background(), "u1", 0, "usd")
	require.ErrorIs(t, err, ErrPayment)
}

func TestSandboxGateway(t *testing.T) {
	svc := NewPaymentService(SandboxGateway{})

	intent, err := svc.CreateIntent(context.Background(), "u1", 2500, "")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
	assert.NotEmpty(t, intent.ID)
	assert.NotEmpty(t, intent.ClientSecret)
}
