package controllers

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/internal/pkg/stripeapi"
)

// RuleGroup is the per-product view of configured rules.
type RuleGroup struct {
	ProductID   string
	ProductName string
	Rules       []models.ProductRule
}

// HandleRules lists all rules grouped by product, with product names pulled
// from Stripe when an API key is configured.
func HandleRules(c *fiber.Ctx) error {
	rules, err := repos().Rule.ListAll()
	if err != nil {
		return flashError(c, "Could not load rules", "/admin")
	}

	var products []stripeapi.ProductInfo
	productNames := map[string]string{}
	if client := stripeClient(); client != nil {
		if list, err := client.ListProducts(); err != nil {
			log.Printf("failed to fetch products: %v", err)
		} else {
			products = list
			for _, p := range list {
				productNames[p.ID] = p.Name
			}
		}
	}

	// Preserve repository ordering (product id, then rule id).
	var groups []RuleGroup
	index := map[string]int{}
	for _, rule := range rules {
		i, ok := index[rule.ProductID]
		if !ok {
			name := productNames[rule.ProductID]
			if name == "" {
				name = rule.ProductID
			}
			groups = append(groups, RuleGroup{ProductID: rule.ProductID, ProductName: name})
			i = len(groups) - 1
			index[rule.ProductID] = i
		}
		groups[i].Rules = append(groups[i].Rules, rule)
	}

	return render(c, "rules", fiber.Map{
		"Title":    "Product rules",
		"Groups":   groups,
		"Products": products,
	})
}

// HandleRuleCreate adds a notification rule for a product.
func HandleRuleCreate(c *fiber.Ctx) error {
	rule := &models.ProductRule{
		ProductID:  strings.TrimSpace(c.FormValue("product_id")),
		ActionKind: c.FormValue("action_kind"),
		Target:     strings.TrimSpace(c.FormValue("target")),
		Enabled:    true,
	}

	if err := rule.Validate(); err != nil {
		return flashError(c, "Invalid rule: check product, action and target", "/admin/rules")
	}
	if err := repos().Rule.Create(rule); err != nil {
		return flashError(c, "Could not save rule", "/admin/rules")
	}
	return flashSuccess(c, "Rule added", "/admin/rules")
}

// HandleRuleDelete removes a rule.
func HandleRuleDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return flashError(c, "Invalid rule id", "/admin/rules")
	}
	if err := repos().Rule.Delete(uint(id)); err != nil {
		return flashError(c, "Could not delete rule", "/admin/rules")
	}
	return flashSuccess(c, "Rule deleted", "/admin/rules")
}

// HandleRuleToggle flips a rule between enabled and disabled.
func HandleRuleToggle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return flashError(c, "Invalid rule id", "/admin/rules")
	}

	rule, err := repos().Rule.GetByID(uint(id))
	if err != nil {
		return flashError(c, "Rule not found", "/admin/rules")
	}
	if err := repos().Rule.SetEnabled(rule.ID, !rule.Enabled); err != nil {
		return flashError(c, "Could not update rule", "/admin/rules")
	}
	return c.Redirect("/admin/rules", fiber.StatusFound)
}
