package domain

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// LookupField names the order column a user-supplied token resolves to
type LookupField string

const (
	LookupByOrderNumber LookupField = "order_number"
	LookupByID          LookupField = "id"
)

var orderNumberPattern = regexp.MustCompile(`^(?i)ORD-[0-9]{8}-[0-9]{4}$`)

// GenerateOrderNumber creates an order number in the format
// ORD-YYYYMMDD-NNNN. The 4-digit sequence is random; uniqueness
// enforcement, if any, lives in the database.
func GenerateOrderNumber(now time.Time) string {
	dateStr := now.UTC().Format("20060102")
	sequence := rand.Intn(9999) + 1
	return fmt.Sprintf("ORD-%s-%04d", dateStr, sequence)
}

// IsValidOrderNumber reports whether a string matches the order number format
func IsValidOrderNumber(token string) bool {
	return orderNumberPattern.MatchString(token)
}

// FormatOrderNumber normalizes an order number for display
func FormatOrderNumber(orderNumber string) string {
	if orderNumber == "" {
		return ""
	}
	return strings.ToUpper(orderNumber)
}

// TokenLookup is the result of classifying a user-supplied order token
type TokenLookup struct {
	Field LookupField
	Value string
}

// ResolveToken classifies a token as an order-number lookup or an
// internal-id lookup. Classification is exclusive: one lookup field per
// token, no cross-field fallback.
func ResolveToken(token string) TokenLookup {
	if IsValidOrderNumber(token) {
		return TokenLookup{Field: LookupByOrderNumber, Value: strings.ToUpper(token)}
	}
	return TokenLookup{Field: LookupByID, Value: token}
}

// DisplayNumber renders the human-facing identifier for an order.
// Falls back from order number to a short id suffix to a sentinel,
// never fails.
func DisplayNumber(orderNumber *string, id string) string {
	if orderNumber != nil && *orderNumber != "" {
		return FormatOrderNumber(*orderNumber)
	}
	if id != "" {
		suffix := id
		if len(suffix) > 8 {
			suffix = suffix[len(suffix)-8:]
		}
		return "#" + strings.ToUpper(suffix)
	}
	return "Unknown Order"
}

// DisplayNumber renders the human-facing identifier for a loaded order
func (o *Order) DisplayNumber() string {
	return DisplayNumber(o.OrderNumber, o.ID.String())
}
