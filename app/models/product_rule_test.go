package models

import (
	"testing"
)

func TestProductRuleValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    ProductRule
		wantErr bool
	}{
		{
			name: "valid email rule",
			rule: ProductRule{ProductID: "prod_1", ActionKind: ActionKindEmail, Target: "a@example.com"},
		},
		{
			name: "valid telegram chat id",
			rule: ProductRule{ProductID: "prod_1", ActionKind: ActionKindTelegram, Target: "123456789"},
		},
		{
			name: "valid telegram channel",
			rule: ProductRule{ProductID: "prod_1", ActionKind: ActionKindTelegram, Target: "@sales_channel"},
		},
		{
			name:    "missing product id",
			rule:    ProductRule{ActionKind: ActionKindEmail, Target: "a@example.com"},
			wantErr: true,
		},
		{
			name:    "unknown action kind",
			rule:    ProductRule{ProductID: "prod_1", ActionKind: "pager", Target: "555"},
			wantErr: true,
		},
		{
			name:    "missing target",
			rule:    ProductRule{ProductID: "prod_1", ActionKind: ActionKindEmail},
			wantErr: true,
		},
		{
			name:    "email rule with non-address target",
			rule:    ProductRule{ProductID: "prod_1", ActionKind: ActionKindEmail, Target: "not-an-email"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
