package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"time"
)

// PaymentIntent is what the gateway hands back when a charge is initiated
// for a freshly reserved order.
type PaymentIntent struct {
	OrderID     string
	Amount      float64
	RedirectURL string
	ExpiresAt   time.Time
}

// PaymentNotification is the parsed gateway callback. The gateway either
// confirms or fails a pending order; nothing richer is modeled here.
type PaymentNotification struct {
	OrderID string
	Paid    bool
	Raw     map[string]interface{}
}

// PaymentGateway is the external payment capture collaborator. The real
// integration lives outside this repository; the engine only needs a charge
// per reservation and a confirm/fail signal back.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, orderID string, amount float64) (*PaymentIntent, error)
	ParseCallback(ctx context.Context, notification map[string]interface{}) (*PaymentNotification, error)
}

// StubPaymentGateway echoes requests back without contacting any gateway.
// Used in development and tests.
type StubPaymentGateway struct {
	serverKey string
}

func NewStubPaymentGateway(serverKey string) *StubPaymentGateway {
	return &StubPaymentGateway{serverKey: serverKey}
}

func (s *StubPaymentGateway) CreatePayment(ctx context.Context, orderID string, amount float64) (*PaymentIntent, error) {
	return &PaymentIntent{
		OrderID:     orderID,
		Amount:      amount,
		RedirectURL: fmt.Sprintf("https://pay.example.com/checkout/%s", orderID),
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}, nil
}

func (s *StubPaymentGateway) ParseCallback(ctx context.Context, notification map[string]interface{}) (*PaymentNotification, error) {
	orderID, ok := notification["order_id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("payment callback missing order_id")
	}

	status, _ := notification["status"].(string)

	// The callback endpoint is public, so a configured server key must be
	// proven: signature_key = SHA512(order_id + status + server_key). With
	// no key configured (local development) unsigned callbacks pass.
	if s.serverKey != "" {
		signature, _ := notification["signature_key"].(string)
		if signature != s.Sign(orderID, status) {
			return nil, fmt.Errorf("payment callback signature mismatch for order %s", orderID)
		}
	}

	return &PaymentNotification{
		OrderID: orderID,
		Paid:    status == "paid" || status == "settlement",
		Raw:     notification,
	}, nil
}

// Sign computes the signature a well-formed callback must carry.
func (s *StubPaymentGateway) Sign(orderID, status string) string {
	hash := sha512.Sum512([]byte(orderID + status + s.serverKey))
	return hex.EncodeToString(hash[:])
}
