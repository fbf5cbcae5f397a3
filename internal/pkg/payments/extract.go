package payments

import (
	"strconv"
	"strings"
)

// productIDPaths are the payload locations a product identifier may live in,
// relative to the event's data.object. First non-empty value wins; the order
// is fixed: payment_details beats metadata.product_id beats
// metadata.order_reference.
var productIDPaths = []string{
	"payment_details.order_reference",
	"metadata.product_id",
	"metadata.order_reference",
}

// ExtractProductID resolves the product identifier from a payment_intent
// payload. Returns "" when no location carries a usable value.
func ExtractProductID(object map[string]interface{}) string {
	for _, path := range productIDPaths {
		if val := stringValue(getNested(object, path)); val != "" {
			return val
		}
	}
	return ""
}

// getNested walks a decoded JSON object using dot notation.
func getNested(data map[string]interface{}, path string) interface{} {
	keys := strings.Split(path, ".")
	var current interface{} = data
	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// stringValue renders scalar JSON values; product ids occasionally arrive as
// numbers when set through the Stripe dashboard.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}
