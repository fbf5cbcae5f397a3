package controllers

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v73/webhook"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stripehooks/stripehooks/app/models"
	"github.com/stripehooks/stripehooks/app/repository"
)

const testWebhookSecret = "whsec_test_secret"

func setupWebhookApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Setting{}, &models.ProductRule{}, &models.PaymentEvent{}))

	repository.InitializeFactory(db)
	InitializeWebhookController()

	app := fiber.New()
	app.Post("/webhook/stripe", HandleStripeWebhook)
	return app, db
}

func signedRequest(t *testing.T, payload []byte, secret string) *http.Request {
	t.Helper()

	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))

	req := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)
	return req
}

func eventPayload(eventID, productID string) []byte {
	metadata := "{}"
	if productID != "" {
		metadata = fmt.Sprintf(`{"product_id": %q}`, productID)
	}
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_%s",
				"object": "payment_intent",
				"amount": 1500,
				"currency": "usd",
				"created": 1700000000,
				"metadata": %s
			}
		}
	}`, eventID, eventID, metadata))
}

func storeWebhookSecret(t *testing.T, db *gorm.DB) {
	t.Helper()
	settings := repository.GetGlobalRepositories().Setting
	require.NoError(t, settings.SetValue(models.SettingStripeWebhookSecret, testWebhookSecret))
	require.NoError(t, models.LoadConfig(db))
}

func TestHandleStripeWebhook(t *testing.T) {
	app, db := setupWebhookApp(t)

	t.Run("rejects when no secret is configured", func(t *testing.T) {
		require.NoError(t, models.LoadConfig(db))

		resp, err := app.Test(signedRequest(t, eventPayload("evt_nosecret", "prod_1"), testWebhookSecret), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	storeWebhookSecret(t, db)

	t.Run("rejects a bad signature", func(t *testing.T) {
		resp, err := app.Test(signedRequest(t, eventPayload("evt_badsig", "prod_1"), "whsec_wrong"), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		events := repository.GetGlobalRepositories().Payment
		_, err = events.GetByEventID("evt_badsig")
		assert.Error(t, err, "unverified events must not be recorded")
	})

	t.Run("ignores non payment events", func(t *testing.T) {
		payload := []byte(`{"id": "evt_refund", "type": "charge.refunded", "data": {"object": {}}}`)
		resp, err := app.Test(signedRequest(t, payload, testWebhookSecret), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"ignored":true`)
	})

	t.Run("records a payment without rules", func(t *testing.T) {
		resp, err := app.Test(signedRequest(t, eventPayload("evt_ok", "prod_t"), testWebhookSecret), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"received":true`)

		events := repository.GetGlobalRepositories().Payment
		stored, err := events.GetByEventID("evt_ok")
		require.NoError(t, err)
		assert.Equal(t, "prod_t", stored.ProductID)
		assert.Equal(t, int64(1500), stored.Amount)
	})

	t.Run("flags a duplicate delivery", func(t *testing.T) {
		resp, err := app.Test(signedRequest(t, eventPayload("evt_ok", "prod_t"), testWebhookSecret), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"duplicate":true`)
	})

	t.Run("records an unmatched payment", func(t *testing.T) {
		resp, err := app.Test(signedRequest(t, eventPayload("evt_unmatched", ""), testWebhookSecret), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"unmatched":true`)

		events := repository.GetGlobalRepositories().Payment
		stored, err := events.GetByEventID("evt_unmatched")
		require.NoError(t, err)
		assert.False(t, stored.Matched())
	})
}
