package webhook

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/pathao-sdk-go/models"
)

const testSecret = "merchant-secret"

func postEvent(t *testing.T, h http.Handler, secret, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(SignatureHeader, secret)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_AcceptsValidEvent(t *testing.T) {
	var got models.WebhookEvent

	h := Handler(testSecret, func(_ *http.Request, event models.WebhookEvent) error {
		got = event
		return nil
	}, nil)

	rec := postEvent(t, h, testSecret,
		`{"consignment_id":"DL123","event":"order.delivered","merchant_order_id":"ORD-9"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, IntegrationSecret, rec.Header().Get(IntegrationHeader))
	assert.Equal(t, "DL123", got.ConsignmentID)
	assert.Equal(t, "order.delivered", got.EventName)
	assert.Equal(t, "ORD-9", got.MerchantOrderID)
}

func TestHandler_RejectsBadSignature(t *testing.T) {
	called := false
	h := Handler(testSecret, func(*http.Request, models.WebhookEvent) error {
		called = true
		return nil
	}, nil)

	rec := postEvent(t, h, "wrong-secret", `{"event":"order.created"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get(IntegrationHeader))
	assert.False(t, called)
}

func TestHandler_RejectsMissingSignature(t *testing.T) {
	h := Handler(testSecret, func(*http.Request, models.WebhookEvent) error {
		return nil
	}, nil)

	rec := postEvent(t, h, "", `{"event":"order.created"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RejectsUndecodablePayload(t *testing.T) {
	h := Handler(testSecret, func(*http.Request, models.WebhookEvent) error {
		return nil
	}, nil)

	rec := postEvent(t, h, testSecret, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CallbackFailure(t *testing.T) {
	h := Handler(testSecret, func(*http.Request, models.WebhookEvent) error {
		return errors.New("downstream unavailable")
	}, nil)

	rec := postEvent(t, h, testSecret, `{"event":"order.created"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerify_EmptyConfiguredSecret(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(SignatureHeader, "")

	// an unset secret never verifies, even against an empty header
	assert.False(t, Verify(req, ""))
}

func TestRouter_RoutesPostWebhook(t *testing.T) {
	r := Router(testSecret, func(*http.Request, models.WebhookEvent) error {
		return nil
	}, nil)

	srv := httptest.NewServer(r)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/webhook", strings.NewReader(`{"event":"order.created"}`))
	require.NoError(t, err)
	req.Header.Set(SignatureHeader, testSecret)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, IntegrationSecret, resp.Header.Get(IntegrationHeader))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := Router(testSecret, func(*http.Request, models.WebhookEvent) error {
		return nil
	}, nil)

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/webhook")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
