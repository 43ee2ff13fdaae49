// Package transport implements the HTTP layer of the Pathao SDK.
//
// The primary abstraction is [API], which decouples the resource layer
// from the wire protocol. The package ships a resty-based implementation
// ([NewHTTPTransport]) that owns the token lifecycle: it lazily obtains an
// access token on first use, refreshes it before expiry, and replays a
// request once after an unexpected 401.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapAPIError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package transport

import (
	"context"

	"github.com/parceldesk/pathao-sdk-go/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// StorePayload is the wire shape of a store creation request, with all
// location references already resolved to Pathao identifiers.
type StorePayload struct {
	Name             string `json:"name"`
	ContactName      string `json:"contact_name"`
	ContactNumber    string `json:"contact_number"`
	SecondaryContact string `json:"secondary_contact,omitempty"`
	OTPNumber        string `json:"otp_number,omitempty"`
	Address          string `json:"address"`
	CityID           int    `json:"city_id"`
	ZoneID           int    `json:"zone_id"`
	AreaID           int    `json:"area_id"`
}

// API defines authenticated communication with the Pathao Courier
// merchant API. Implementations are responsible for serialisation,
// token management, and mapping transport-level errors to the sentinel
// values defined in this package.
type API interface {
	// ListCities fetches the full list of coverage cities.
	ListCities(ctx context.Context) ([]models.City, error)

	// ListZones fetches all zones of the given city.
	ListZones(ctx context.Context, cityID int) ([]models.Zone, error)

	// ListAreas fetches all areas of the given zone.
	ListAreas(ctx context.Context, zoneID int) ([]models.Area, error)

	// ListStores fetches the merchant's stores. A non-positive limit
	// returns all stores.
	ListStores(ctx context.Context, limit int) ([]models.Store, error)

	// CreateStore registers a new pickup store and returns the created
	// record.
	CreateStore(ctx context.Context, payload StorePayload) (models.Store, error)

	// Token returns the token currently held by the transport. A zero
	// token means no authentication has happened yet.
	Token() models.Token

	// Close releases the transport's network resources. The transport
	// must not be used after Close.
	Close() error
}
