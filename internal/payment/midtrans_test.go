package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	const (
		orderID     = "PV-123"
		statusCode  = "200"
		grossAmount = "999.00"
		serverKey   = "SB-Mid-server-key"
	)

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	valid := hex.EncodeToString(sum[:])

	assert.True(t, VerifySignature(orderID, statusCode, grossAmount, serverKey, valid))
	assert.False(t, VerifySignature(orderID, statusCode, grossAmount, serverKey, "tampered"))
	assert.False(t, VerifySignature("PV-124", statusCode, grossAmount, serverKey, valid))
	assert.False(t, VerifySignature(orderID, statusCode, grossAmount, "wrong-key", valid))
}

func TestWebhookNotification_Settled(t *testing.T) {
	assert.True(t, (&WebhookNotification{TransactionStatus: "settlement"}).Settled())
	assert.True(t, (&WebhookNotification{TransactionStatus: "capture", FraudStatus: "accept"}).Settled())
	assert.True(t, (&WebhookNotification{TransactionStatus: "capture"}).Settled())
	assert.False(t, (&WebhookNotification{TransactionStatus: "capture", FraudStatus: "challenge"}).Settled())
	assert.False(t, (&WebhookNotification{TransactionStatus: "pending"}).Settled())
}

func TestWebhookNotification_Failed(t *testing.T) {
	for _, status := range []string{"deny", "cancel", "expire", "failure"} {
		assert.True(t, (&WebhookNotification{TransactionStatus: status}).Failed(), status)
	}
	assert.False(t, (&WebhookNotification{TransactionStatus: "pending"}).Failed())
	assert.False(t, (&WebhookNotification{TransactionStatus: "settlement"}).Failed())
}
