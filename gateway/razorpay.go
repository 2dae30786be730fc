// Package gateway wraps the Razorpay payment gateway: creating payment
// intents and authenticating the client-reported completion callback.
package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	"sweetshop/config"
)

var ErrInvalidSignature = errors.New("invalid signature")

type Client struct {
	keySecret string
	api       *razorpay.Client
}

func New(cfg config.RazorpayConfig) *Client {
	return &Client{
		keySecret: cfg.KeySecret,
		api:       razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
	}
}

// CreateOrder asks the gateway for a payment intent over the given amount in
// the major currency unit (rupees). The gateway wants paise, so the amount is
// multiplied by 100 and rounded to an integer. Gateway errors are passed back
// verbatim.
func (c *Client) CreateOrder(amount float64) (map[string]interface{}, error) {
	paise := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	data := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  "receipt_" + uuid.NewString()[:8],
	}
	order, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating order: %w", err)
	}
	return order, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// key secret and compares it to the reported signature in constant time. Any
// mismatch yields the same generic error.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	return VerifySignature(orderID, paymentID, signature, c.keySecret)
}

func VerifySignature(orderID, paymentID, signature, secret string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
