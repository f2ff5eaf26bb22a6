package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
)

func testDispatcher() *Dispatcher {
	return NewDispatcher(config.WhatsAppConfig{
		BusinessPhone: "+918107514654",
		SupportEmail:  "support@patramstore.com",
		StoreName:     "Patram Store",
	})
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"bare 10 digits gets country code", "9876543210", "919876543210"},
		{"formatted with country code", "+91 98765 43210", "919876543210"},
		{"already 91 prefixed", "919876543210", "919876543210"},
		{"punctuation stripped", "(0141) 555-0123 99", "0141555012399"},
		{"other country code kept", "+4420794600958", "4420794600958"},
		{"too short", "12345", ""},
		{"empty", "", ""},
		{"letters only", "call me", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.phone))
		})
	}
}

func TestWebURL(t *testing.T) {
	link := WebURL("+91 98765 43210", "Hello & welcome")
	assert.Equal(t, "https://wa.me/919876543210?text=Hello+%26+welcome", link)
}

func TestWebURLUnformattablePhone(t *testing.T) {
	assert.Equal(t, "", WebURL("12345", "Hello"))
}

func TestBuildConfirmationMessage(t *testing.T) {
	d := testDispatcher()

	msg := d.BuildConfirmationMessage(OrderSnapshot{
		OrderNumber:  "ORD-20250112-0042",
		CustomerName: "Asha Sharma",
		Total:        450,
		Items: []ItemSnapshot{
			{Name: "Brass Diya", Quantity: 2, UnitPrice: 100},
			{Name: "Copper Kalash", Quantity: 1, UnitPrice: 250},
		},
		Status:          domain.OrderStatusPending,
		ShippingAddress: "12 MG Road, Jaipur, Rajasthan, India - 302001",
	})

	assert.Contains(t, msg, "Order Confirmation - Patram Store")
	assert.Contains(t, msg, "Hello Asha Sharma!")
	assert.Contains(t, msg, "Order Number: *ORD-20250112-0042*")
	// Line totals are quantity times unit price
	assert.Contains(t, msg, "• Brass Diya (Qty: 2) - ₹200")
	assert.Contains(t, msg, "• Copper Kalash (Qty: 1) - ₹250")
	assert.Contains(t, msg, "Total Amount: ₹450")
	assert.Contains(t, msg, "Shipping Address:")
	assert.Contains(t, msg, "12 MG Road, Jaipur, Rajasthan, India - 302001")
	assert.Contains(t, msg, "support@patramstore.com")
}

func TestBuildConfirmationMessageNoAddress(t *testing.T) {
	d := testDispatcher()

	msg := d.BuildConfirmationMessage(OrderSnapshot{
		OrderNumber:  "ORD-20250112-0042",
		CustomerName: "Asha Sharma",
		Status:       domain.OrderStatusPending,
	})

	assert.NotContains(t, msg, "Shipping Address:")
}

func TestBuildStatusMessage(t *testing.T) {
	d := testDispatcher()

	msg := d.BuildStatusMessage("ORD-20250112-0042", "Asha Sharma", domain.OrderStatusShipped)

	require.Contains(t, msg, "Order Status Update - Patram Store")
	assert.Contains(t, msg, "Order Number: *ORD-20250112-0042*")
	assert.Contains(t, msg, "New Status: *Shipped*")
	assert.Contains(t, msg, "📦")
}
