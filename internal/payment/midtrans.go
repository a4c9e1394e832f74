package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Gateway is the payment-provider boundary. Handlers and services only
// see order creation and webhook verification; the provider SDK stays
// behind this interface.
type Gateway interface {
	// CreateOrder registers a pending transaction with the provider and
	// returns the checkout token and redirect URL.
	CreateOrder(orderID string, amount int64, customerName, customerEmail, description string) (*Order, error)

	// VerifySignature checks a webhook notification signature.
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

// Order is the provider-side handle for a created transaction.
type Order struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// WebhookNotification is the payload the gateway posts on status changes.
type WebhookNotification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
}

// Settled reports whether the notification means the payment went
// through.
func (n *WebhookNotification) Settled() bool {
	switch n.TransactionStatus {
	case "settlement":
		return true
	case "capture":
		return n.FraudStatus == "" || n.FraudStatus == "accept"
	}
	return false
}

// Failed reports a terminal unsuccessful state.
func (n *WebhookNotification) Failed() bool {
	switch n.TransactionStatus {
	case "deny", "cancel", "expire", "failure":
		return true
	}
	return false
}

// MidtransGateway implements Gateway over the Midtrans Snap API.
type MidtransGateway struct {
	client    snap.Client
	serverKey string
}

// NewMidtransGateway builds a gateway client. useProduction selects the
// provider environment.
func NewMidtransGateway(serverKey string, useProduction bool) *MidtransGateway {
	g := &MidtransGateway{serverKey: serverKey}
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateOrder(orderID string, amount int64, customerName, customerEmail, description string) (*Order, error) {
	if amount <= 0 {
		return nil, errors.New("invalid payment amount")
	}
	if orderID == "" {
		return nil, errors.New("order id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID: orderID,
			// The provider works in major units.
			GrossAmt: amount / 100,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    orderID,
				Price: amount / 100,
				Qty:   1,
				Name:  description,
			},
		},
	}

	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider transaction: %w", err)
	}

	return &Order{
		OrderID:     orderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// VerifySignature checks the sha512 webhook signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (g *MidtransGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return VerifySignature(orderID, statusCode, grossAmount, g.serverKey, signature)
}

// VerifySignature is the raw check, exposed for tests and reuse.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	expected := hex.EncodeToString(h[:])
	return expected == signature
}
