package payments

import (
	"encoding/json"
	"testing"
)

func decodeObject(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var object map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &object); err != nil {
		t.Fatalf("decode test payload: %v", err)
	}
	return object
}

func TestExtractProductID_Priority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "payment details wins over metadata",
			raw: `{
				"payment_details": {"order_reference": "prod_from_details"},
				"metadata": {"product_id": "prod_from_meta", "order_reference": "prod_from_order"}
			}`,
			want: "prod_from_details",
		},
		{
			name: "metadata product_id wins over order_reference",
			raw: `{
				"metadata": {"product_id": "prod_from_meta", "order_reference": "prod_from_order"}
			}`,
			want: "prod_from_meta",
		},
		{
			name: "metadata order_reference as last resort",
			raw:  `{"metadata": {"order_reference": "prod_from_order"}}`,
			want: "prod_from_order",
		},
		{
			name: "empty string falls through to next location",
			raw: `{
				"payment_details": {"order_reference": "  "},
				"metadata": {"product_id": "prod_123"}
			}`,
			want: "prod_123",
		},
		{
			name: "no product id anywhere",
			raw:  `{"metadata": {"campaign": "summer"}, "amount": 1999}`,
			want: "",
		},
		{
			name: "surrounding whitespace is trimmed",
			raw:  `{"metadata": {"product_id": "  prod_777  "}}`,
			want: "prod_777",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractProductID(decodeObject(t, tt.raw)); got != tt.want {
				t.Fatalf("ExtractProductID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractProductID_NumericValue(t *testing.T) {
	t.Parallel()

	object := decodeObject(t, `{"metadata": {"product_id": 42}}`)
	if got := ExtractProductID(object); got != "42" {
		t.Fatalf("ExtractProductID() = %q, want %q", got, "42")
	}
}

func TestExtractProductID_NonObjectIntermediate(t *testing.T) {
	t.Parallel()

	object := decodeObject(t, `{"payment_details": "not-an-object", "metadata": {"product_id": "prod_1"}}`)
	if got := ExtractProductID(object); got != "prod_1" {
		t.Fatalf("ExtractProductID() = %q, want %q", got, "prod_1")
	}
}

func TestExtractProductID_NilObject(t *testing.T) {
	t.Parallel()

	if got := ExtractProductID(nil); got != "" {
		t.Fatalf("ExtractProductID(nil) = %q, want empty", got)
	}
}
