package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	orderID := "order_N5YcEf3k9Qw1Zx"
	paymentID := "pay_N5Yd7Gh2Lm8Rv"

	good := sign(orderID, paymentID, secret)
	if err := VerifySignature(orderID, paymentID, good, secret); err != nil {
		t.Fatalf("expected valid signature to pass, got %v", err)
	}

	// Any single-character mutation of any input flips the result.
	cases := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
	}{
		{"mutated order id", orderID[:len(orderID)-1] + "X", paymentID, good, secret},
		{"mutated payment id", orderID, paymentID[:len(paymentID)-1] + "V", good, secret},
		{"mutated signature", orderID, paymentID, mutateHex(good), secret},
		{"mutated secret", orderID, paymentID, good, "test_secreT"},
		{"empty signature", orderID, paymentID, "", secret},
	}

	for _, tc := range cases {
		err := VerifySignature(tc.orderID, tc.paymentID, tc.signature, tc.secret)
		if !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("%s: expected ErrInvalidSignature, got %v", tc.name, err)
		}
	}
}

func mutateHex(s string) string {
	last := s[len(s)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return s[:len(s)-1] + string(replacement)
}

func TestClientVerifySignature(t *testing.T) {
	c := &Client{keySecret: "shop_secret"}
	good := sign("order_1", "pay_1", "shop_secret")

	if err := c.VerifySignature("order_1", "pay_1", good); err != nil {
		t.Fatalf("expected valid signature to pass, got %v", err)
	}
	if err := c.VerifySignature("order_2", "pay_1", good); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}
