package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

var ErrPayment = errors.New("payment processing failed")

// PaymentIntent is the gateway's view of a pending charge. Amounts are in
// cents.
type PaymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

// PaymentGateway is the opaque payment collaborator.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
}

// GatewayClient talks to the external payment gateway over HTTP.
type GatewayClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGatewayClient(baseURL, apiKey string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createIntentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (g *GatewayClient) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	body, err := json.Marshal(createIntentRequest{
		Amount:   amount,
		Currency: currency,
		Metadata: metadata,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payment_intents", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayment, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrPayment, resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayment, err)
	}
	return &intent, nil
}

// SandboxGateway fabricates succeeded intents locally. Used when no gateway
// URL is configured, so the order flow works in development.
type SandboxGateway struct{}

func (SandboxGateway) CreateIntent(_ context.Context, amount int64, currency string, _ map[string]string) (*PaymentIntent, error) {
	id := "pi_" + uuid.NewString()
	log.Printf("sandbox payment intent %s for %d %s", id, amount, currency)
	return &PaymentIntent{
		ID:           id,
		Status:       "succeeded",
		ClientSecret: id + "_secret_" + uuid.NewString(),
	}, nil
}

type PaymentService struct {
	gateway PaymentGateway
}

func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateIntent creates a charge for the given amount in cents.
func (s *PaymentService) CreateIntent(ctx context.Context, userID string, amount int64, currency string) (*PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPayment)
	}
	if currency == "" {
		currency = "usd"
	}

	return s.gateway.CreateIntent(ctx, amount, currency, map[string]string{
		"user_id": userID,
	})
}
