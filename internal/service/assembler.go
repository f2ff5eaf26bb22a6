package service

import (
	"regexp"
	"strings"

	"github.com/patramstore/storefront-api/internal/cart"
	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/pkg/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{10,}$`)
)

// AssembleOrder converts cart state plus the shipping form into a
// normalized order draft. Pure: validation fails closed with
// field-level errors instead of an error value escaping the checkout
// boundary; no I/O happens here. Prices are the client-side snapshot
// and are not re-validated against the catalog (known trust boundary).
func AssembleOrder(c *cart.Cart, address domain.ShippingAddress, email string, method domain.PaymentMethod) (*OrderDraft, []errors.FieldError) {
	var fieldErrors []errors.FieldError

	addField := func(field, message string) {
		fieldErrors = append(fieldErrors, errors.FieldError{Field: field, Message: message})
	}

	if c == nil || c.IsEmpty() {
		addField("items", "cart is empty")
	}

	if strings.TrimSpace(address.Name) == "" {
		addField("name", "Full name is required")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		addField("email", "Email is required")
	} else if !emailPattern.MatchString(email) {
		addField("email", "Please enter a valid email address")
	}

	phone := strings.TrimSpace(address.Phone)
	if phone == "" {
		addField("phone", "Phone number is required")
	} else if !phonePattern.MatchString(strings.ReplaceAll(phone, " ", "")) {
		addField("phone", "Please enter a valid phone number")
	}

	if strings.TrimSpace(address.Address) == "" {
		addField("address", "Address is required")
	}
	if strings.TrimSpace(address.City) == "" {
		addField("city", "City is required")
	}
	if strings.TrimSpace(address.Pincode) == "" {
		addField("pincode", "Pincode is required")
	}
	if strings.TrimSpace(address.State) == "" {
		addField("state", "State is required")
	}
	if strings.TrimSpace(address.Country) == "" {
		addField("country", "Country is required")
	}

	if !method.IsValid() {
		addField("payment_method", "Payment method must be cod or online")
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	items := make([]cart.Line, len(c.Lines))
	copy(items, c.Lines)

	return &OrderDraft{
		Items:           items,
		Total:           c.Total(),
		CustomerEmail:   email,
		ShippingAddress: address,
		PaymentMethod:   method,
	}, nil
}
