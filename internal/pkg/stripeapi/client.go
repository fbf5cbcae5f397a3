package stripeapi

import (
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v73"
	"github.com/stripe/stripe-go/v73/client"
)

// EventPaymentSucceeded is the only Stripe event type this service subscribes to.
const EventPaymentSucceeded = "payment_intent.succeeded"

// Client wraps the Stripe SDK client for the handful of API calls the admin UI
// and the webhook enrichment need.
type Client struct {
	api *client.API
}

// New creates a Stripe client for the given secret key.
func New(apiKey string) *Client {
	var api client.API
	api.Init(apiKey, nil)
	return &Client{api: &api}
}

// NormalizeKey removes whitespace and stray chars that can break auth
// (e.g. a trailing colon picked up from a curl -u example).
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasSuffix(key, ":") && !strings.Contains(key[:len(key)-1], ":") {
		key = key[:len(key)-1]
	}
	return key
}

// EndpointResult reports what EnsureWebhookEndpoint did.
type EndpointResult struct {
	EndpointID string
	// Secret is only set when the endpoint was newly created; Stripe returns
	// the signing secret exactly once.
	Secret  string
	Created bool
}

// EnsureWebhookEndpoint registers webhookURL for payment_intent.succeeded
// events, reusing an existing endpoint with the same URL when present.
func (c *Client) EnsureWebhookEndpoint(webhookURL string) (*EndpointResult, error) {
	listParams := &stripe.WebhookEndpointListParams{}
	listParams.Limit = stripe.Int64(100)

	iter := c.api.WebhookEndpoints.List(listParams)
	for iter.Next() {
		endpoint := iter.WebhookEndpoint()
		if endpoint.URL != webhookURL {
			continue
		}
		_, err := c.api.WebhookEndpoints.Update(endpoint.ID, &stripe.WebhookEndpointParams{
			EnabledEvents: stripe.StringSlice([]string{EventPaymentSucceeded}),
		})
		if err != nil {
			return nil, fmt.Errorf("update webhook endpoint %s: %w", endpoint.ID, err)
		}
		return &EndpointResult{EndpointID: endpoint.ID}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list webhook endpoints: %w", err)
	}

	endpoint, err := c.api.WebhookEndpoints.New(&stripe.WebhookEndpointParams{
		URL:           stripe.String(webhookURL),
		EnabledEvents: stripe.StringSlice([]string{EventPaymentSucceeded}),
		Description:   stripe.String("StripeHooks payment notifications"),
	})
	if err != nil {
		return nil, fmt.Errorf("create webhook endpoint: %w", err)
	}

	return &EndpointResult{
		EndpointID: endpoint.ID,
		Secret:     endpoint.Secret,
		Created:    true,
	}, nil
}

// ProductInfo is the subset of a Stripe product shown in the rules UI.
type ProductInfo struct {
	ID          string
	Name        string
	Description string
}

// ListProducts returns the active products of the connected account.
func (c *Client) ListProducts() ([]ProductInfo, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	params.Limit = stripe.Int64(100)

	var products []ProductInfo
	iter := c.api.Products.List(params)
	for iter.Next() {
		p := iter.Product()
		products = append(products, ProductInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProductName resolves a product id to its display name for notifications.
// Falls back to the id when the product cannot be fetched.
func (c *Client) GetProductName(productID string) string {
	p, err := c.api.Products.Get(productID, nil)
	if err != nil || p.Name == "" {
		return productID
	}
	return p.Name
}

// GetCustomer returns (name, email) for a customer id, empty strings on failure.
func (c *Client) GetCustomer(customerID string) (string, string) {
	cust, err := c.api.Customers.Get(customerID, nil)
	if err != nil {
		return "", ""
	}
	return cust.Name, cust.Email
}
