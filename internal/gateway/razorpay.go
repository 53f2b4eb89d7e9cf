// Package gateway wraps the payment provider's order API behind a narrow
// interface so the checkout service never sees the provider's dynamic payloads.
package gateway

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the subset of the gateway's order record the service needs. Amount
// is echoed back in the gateway's smallest subunit (paise for INR).
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

type Client interface {
	CreateOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (*Order, error)
}

const requestTimeoutSeconds = 10

type RazorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	c := razorpay.NewClient(keyID, keySecret)
	c.SetTimeout(requestTimeoutSeconds)
	return &RazorpayClient{client: c}
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountSubunits,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	order := &Order{
		ID:       stringField(body, "id"),
		Amount:   intField(body, "amount"),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
	}
	if order.ID == "" {
		return nil, errors.New("razorpay response missing order id")
	}
	return order, nil
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return s
}

func intField(body map[string]interface{}, key string) int64 {
	// The SDK decodes JSON numbers as float64.
	f, _ := body[key].(float64)
	return int64(f)
}

var _ Client = (*RazorpayClient)(nil)
