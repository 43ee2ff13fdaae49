package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/parceldesk/pathao-sdk-go/models"
)

const defaultTokenTTL = 3600 * time.Second

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	GrantType    string `json:"grant_type"`
}

// ensureToken guarantees a usable access token before an authenticated
// request goes out. A held refresh token is tried first; if the refresh
// grant is rejected the transport falls back to the password grant.
func (h *httpTransport) ensureToken(ctx context.Context) error {
	token := h.Token()
	if !token.IsZero() && !token.IsExpired() {
		return nil
	}

	return h.reauthenticate(ctx)
}

func (h *httpTransport) reauthenticate(ctx context.Context) error {
	token := h.Token()
	if token.RefreshToken != "" {
		if err := h.refreshGrant(ctx, token.RefreshToken); err == nil {
			return nil
		}
		h.log.Debug().Msg("refresh grant rejected, falling back to password grant")
	}

	return h.passwordGrant(ctx)
}

func (h *httpTransport) passwordGrant(ctx context.Context) error {
	return h.issueToken(ctx, tokenRequest{
		ClientID:     h.cfg.ClientID,
		ClientSecret: h.cfg.ClientSecret,
		Username:     h.cfg.Username,
		Password:     h.cfg.Password,
		GrantType:    "password",
	})
}

func (h *httpTransport) refreshGrant(ctx context.Context, refreshToken string) error {
	return h.issueToken(ctx, tokenRequest{
		ClientID:     h.cfg.ClientID,
		ClientSecret: h.cfg.ClientSecret,
		RefreshToken: refreshToken,
		GrantType:    "refresh_token",
	})
}

func (h *httpTransport) issueToken(ctx context.Context, req tokenRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(issueTokenPath)
	if err != nil {
		return fmt.Errorf("issue token request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return err
	}

	if err = h.storeToken(resp.Body()); err != nil {
		return err
	}

	h.log.Debug().Str("grant_type", req.GrantType).Msg("access token issued")
	return nil
}

func (h *httpTransport) storeToken(body []byte) error {
	var tr models.TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrBadEnvelope)
	}

	expiresAt := tokenExpiry(tr.AccessToken, tr.ExpiresIn)
	tokenType := tr.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	h.mu.Lock()
	h.token.AccessToken = tr.AccessToken
	h.token.TokenType = tokenType
	h.token.ExpiresAt = expiresAt
	if tr.RefreshToken != "" {
		h.token.RefreshToken = tr.RefreshToken
	}
	h.mu.Unlock()

	return nil
}

// tokenExpiry derives the absolute expiry instant. expires_in wins when
// the server sends it; otherwise the "exp" claim of the (unverified)
// access token is used, and failing both a conservative default applies.
func tokenExpiry(accessToken string, expiresIn int64) time.Time {
	if expiresIn > 0 {
		return time.Now().Add(time.Duration(expiresIn) * time.Second)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err == nil {
		if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				return exp.Time
			}
		}
	}

	return time.Now().Add(defaultTokenTTL)
}
