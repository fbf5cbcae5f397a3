package stripeapi

import (
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"sk_test_abc", "sk_test_abc"},
		{"  sk_test_abc \n", "sk_test_abc"},
		// trailing colon from a copied curl -u example
		{"sk_test_abc:", "sk_test_abc"},
		{"  sk_test_abc:  ", "sk_test_abc"},
		// restricted keys with an inner colon keep their suffix untouched
		{"rk_live_a:b:", "rk_live_a:b:"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
