package service

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"crewpay/internal/config"
)

// IntentService is a thin call-through to the payment gateway's intent API.
type IntentService struct {
	api *client.API
}

// NewIntentService creates a gateway client bound to the configured secret key.
func NewIntentService(cfg *config.Config) *IntentService {
	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)
	return &IntentService{api: api}
}

// CreateIntent requests a card-only USD payment intent for the given amount
// (smallest currency unit) and returns its client-side secret. Gateway
// failures are surfaced verbatim.
func (s *IntentService) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("payment gateway: %w", err)
	}
	return intent.ClientSecret, nil
}
