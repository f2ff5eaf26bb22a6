package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/patramstore/storefront-api/internal/config"
	"github.com/patramstore/storefront-api/internal/domain"
)

// OrderSnapshot carries the order details a confirmation message needs
type OrderSnapshot struct {
	OrderNumber     string
	CustomerName    string
	Total           float64
	Items           []ItemSnapshot
	Status          domain.OrderStatus
	ShippingAddress string
}

type ItemSnapshot struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Dispatcher builds WhatsApp messages and deep links. Actual delivery
// through a messaging backend is out of scope; callers get a clickable
// wa.me URL.
type Dispatcher struct {
	businessPhone string
	supportEmail  string
	storeName     string
}

// NewDispatcher creates a message dispatcher
func NewDispatcher(cfg config.WhatsAppConfig) *Dispatcher {
	return &Dispatcher{
		businessPhone: cfg.BusinessPhone,
		supportEmail:  cfg.SupportEmail,
		storeName:     cfg.StoreName,
	}
}

// FormatPhoneNumber normalizes a phone number to digits with a country
// code. Bare 10-digit numbers are assumed Indian and get a 91 prefix.
// Returns "" for unparseable input; callers treat that as
// cannot-notify, not as an error.
func FormatPhoneNumber(phone string) string {
	var cleaned strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}
	digits := cleaned.String()

	switch {
	case len(digits) == 10:
		return "91" + digits
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits
	case len(digits) > 10:
		return digits
	default:
		return ""
	}
}

// WebURL builds a wa.me deep link carrying the message. Returns "" when
// the phone number cannot be normalized.
func WebURL(phone, message string) string {
	digits := FormatPhoneNumber(phone)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// BuildConfirmationMessage renders the order confirmation template
func (d *Dispatcher) BuildConfirmationMessage(snapshot OrderSnapshot) string {
	lines := make([]string, len(snapshot.Items))
	for i, item := range snapshot.Items {
		lines[i] = fmt.Sprintf("• %s (Qty: %d) - ₹%.0f", item.Name, item.Quantity, item.UnitPrice*float64(item.Quantity))
	}
	itemsList := strings.Join(lines, "\n")

	var addressBlock string
	if snapshot.ShippingAddress != "" {
		addressBlock = fmt.Sprintf("\n📍 *Shipping Address:*\n%s\n", snapshot.ShippingAddress)
	}

	return fmt.Sprintf(`🎉 *Order Confirmation - %s*

Hello %s! 👋

Your order has been successfully placed and is being processed.

📋 *Order Details:*
Order Number: *%s*
Status: *%s*

🛍️ *Items Ordered:*
%s

💰 *Total Amount: ₹%.0f*
%s
📞 *Need Help?*
Contact us: %s
Email: %s

Thank you for choosing %s! 🙏

---
*This is an automated message. Please do not reply to this number.*`,
		d.storeName,
		snapshot.CustomerName,
		snapshot.OrderNumber,
		snapshot.Status,
		itemsList,
		snapshot.Total,
		addressBlock,
		d.businessPhone,
		d.supportEmail,
		d.storeName,
	)
}

// BuildStatusMessage renders the status update template
func (d *Dispatcher) BuildStatusMessage(orderNumber, customerName string, status domain.OrderStatus) string {
	return fmt.Sprintf(`📱 *Order Status Update - %s*

Hello %s! 👋

%s *Order Update:*
Order Number: *%s*
New Status: *%s*

📞 *Need Help?*
Contact us: %s
Email: %s

Thank you for choosing %s! 🙏

---
*This is an automated message. Please do not reply to this number.*`,
		d.storeName,
		customerName,
		statusEmoji(status),
		orderNumber,
		status,
		d.businessPhone,
		d.supportEmail,
		d.storeName,
	)
}

func statusEmoji(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusPending:
		return "⏳"
	case domain.OrderStatusConfirmed:
		return "✅"
	case domain.OrderStatusProcessing:
		return "🔄"
	case domain.OrderStatusShipped:
		return "📦"
	case domain.OrderStatusDelivered:
		return "🎉"
	case domain.OrderStatusCancelled:
		return "❌"
	default:
		return "📋"
	}
}
