package models

import "time"

// expirySkew is subtracted from the token's real expiry so that a token
// is refreshed shortly before the server would start rejecting it.
const expirySkew = 60 * time.Second

// Token holds the OAuth-style token pair issued by the Pathao
// issue-token endpoint together with its computed expiry instant.
type Token struct {
	// AccessToken is the bearer token attached to authenticated requests.
	AccessToken string `json:"access_token"`

	// RefreshToken, when present, allows the transport to obtain a new
	// access token without replaying the merchant's credentials.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is the token scheme, normally "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresAt is the instant at which AccessToken stops being valid,
	// computed from the issue-token response when the token is stored.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the access token should be treated as
// expired. A 60 second safety margin is applied so in-flight requests
// do not race the real expiry.
func (t Token) IsExpired() bool {
	return !time.Now().Before(t.ExpiresAt.Add(-expirySkew))
}

// IsZero reports whether the token has never been populated.
func (t Token) IsZero() bool {
	return t.AccessToken == ""
}
