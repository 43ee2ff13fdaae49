// Package webhook receives consignment status callbacks from Pathao.
//
// Pathao posts JSON events to the merchant's configured URL with the
// shared secret in the X-PATHAO-Signature header. The handler verifies
// the secret, decodes the event, invokes the merchant's callback, and
// acknowledges with 202 Accepted carrying the fixed integration header
// Pathao requires on every response.
package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/models"
)

const (
	// SignatureHeader carries the merchant's shared webhook secret on
	// every inbound request.
	SignatureHeader = "X-PATHAO-Signature"

	// IntegrationHeader must be present on every webhook response or
	// Pathao marks the integration as broken.
	IntegrationHeader = "X-Pathao-Merchant-Webhook-Integration-Secret"

	// IntegrationSecret is the fixed value Pathao expects in
	// [IntegrationHeader]. It is the same for all merchants.
	IntegrationSecret = "f3992ecc-59da-4cbe-a049-a13da2018d51"
)

// EventFunc handles one verified webhook event. Returning an error
// makes the handler respond 500 so Pathao redelivers.
type EventFunc func(r *http.Request, event models.WebhookEvent) error

// Verify checks the signature header of an inbound request against the
// configured secret in constant time.
func Verify(r *http.Request, secret string) bool {
	if secret == "" {
		return false
	}
	got := r.Header.Get(SignatureHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}

// Handler returns an http.Handler that verifies, decodes and dispatches
// webhook events to fn.
//
// Responses: 401 on a bad signature, 400 on an undecodable payload,
// 500 when fn fails, 202 with the integration header on success.
func Handler(secret string, fn EventFunc, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Verify(r, secret) {
			log.Warn().Str("remote", r.RemoteAddr).Msg("webhook signature mismatch")
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}

		var event models.WebhookEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			log.Warn().Err(err).Msg("undecodable webhook payload")
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := fn(r, event); err != nil {
			log.Error().
				Err(err).
				Str("event", event.EventName).
				Str("consignment_id", event.ConsignmentID).
				Msg("webhook callback failed")
			http.Error(w, "event handling failed", http.StatusInternalServerError)
			return
		}

		log.Info().
			Str("event", event.EventName).
			Str("consignment_id", event.ConsignmentID).
			Msg("webhook event accepted")

		w.Header().Set(IntegrationHeader, IntegrationSecret)
		w.WriteHeader(http.StatusAccepted)
	})
}

// Router mounts the webhook handler at POST /webhook with panic
// recovery and request logging, ready to pass to http.Server.
func Router(secret string, fn EventFunc, log *logger.Logger) chi.Router {
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Method(http.MethodPost, "/webhook", Handler(secret, fn, log))
	return r
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("webhook request")
		})
	}
}
