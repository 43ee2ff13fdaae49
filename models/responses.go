package models

import "encoding/json"

// Envelope is the outer wrapper the Pathao API places around every
// successful response body.
type Envelope struct {
	// Message is a human-readable status message.
	Message string `json:"message"`

	// Type is the API's own status classifier (e.g. "success").
	Type string `json:"type"`

	// Code mirrors the HTTP status code.
	Code int `json:"code"`

	// Data carries the endpoint-specific payload. It is left raw so
	// each caller can decode into its own shape.
	Data json.RawMessage `json:"data"`
}

// TokenResponse is the body of a successful issue-token call.
// ExpiresIn is in seconds; the transport converts it to an absolute
// expiry when it stores the token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CityListData is the inner payload of the city-list endpoint.
// The API nests the slice one level deeper than the envelope
// ("data" inside "data").
type CityListData struct {
	Cities []City `json:"data"`
}

// ZoneListData is the inner payload of the zone-list endpoint.
type ZoneListData struct {
	Zones []Zone `json:"data"`
}

// AreaListData is the inner payload of the area-list endpoint.
type AreaListData struct {
	Areas []Area `json:"data"`
}

// StoreListData is the inner payload of the store listing endpoint.
type StoreListData struct {
	Stores []Store `json:"stores"`
}

// StoreCreatedData is the inner payload returned after a store is created.
type StoreCreatedData struct {
	Store Store `json:"store"`
}
