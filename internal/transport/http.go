package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/models"
)

const (
	issueTokenPath = "/aladdin/api/v1/issue-token"
	cityListPath   = "/aladdin/api/v1/city-list"
	zoneListPath   = "/aladdin/api/v1/cities/%d/zone-list"
	areaListPath   = "/aladdin/api/v1/zones/%d/area-list"
	storesPath     = "/aladdin/api/v1/stores"
)

// Config carries the settings the HTTP transport needs. It is assembled
// by the pathao package from the resolved SDK configuration.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Timeout      time.Duration
	MaxRetries   int
}

type httpTransport struct {
	client *resty.Client
	cfg    Config
	log    *logger.Logger

	mu    sync.RWMutex
	token models.Token
}

// NewHTTPTransport builds the resty-backed [API] implementation.
//
// The client retries transport failures and 429/5xx responses with
// exponential backoff up to cfg.MaxRetries attempts, and stamps every
// request with an X-Request-ID header for correlation.
func NewHTTPTransport(cfg Config, log *logger.Logger) API {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if log == nil {
		log = logger.Nop()
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(10 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests ||
				r.StatusCode() >= http.StatusInternalServerError
		})

	cli.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &httpTransport{client: cli, cfg: cfg, log: log}
}

func (h *httpTransport) Token() models.Token {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpTransport) setToken(token models.Token) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *httpTransport) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}

// mapAPIError translates a non-2xx response into a sentinel error with
// the status and body retained in the wrapped message.
func mapAPIError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrServerError, code, body)
	default:
		return fmt.Errorf("pathao: http %d: %s", code, body)
	}
}

// decodeEnvelope unwraps the API's {"data": ...} envelope and decodes
// the inner payload into out.
func decodeEnvelope(body []byte, out any) error {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return ErrBadEnvelope
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return nil
}
