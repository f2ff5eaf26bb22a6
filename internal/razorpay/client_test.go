package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/patramstore/storefront-api/internal/config"
)

func sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := NewClient(config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret123"}, zap.NewNop())

	good := sign("secret123", "order_abc", "pay_xyz")
	assert.True(t, client.VerifySignature("order_abc", "pay_xyz", good))

	// Wrong payment id
	assert.False(t, client.VerifySignature("order_abc", "pay_other", good))
	// Wrong gateway order id
	assert.False(t, client.VerifySignature("order_other", "pay_xyz", good))
	// Signature computed with a different secret
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", sign("wrong", "order_abc", "pay_xyz")))
	// Garbage and empty signatures
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", "deadbeef"))
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", ""))
}
