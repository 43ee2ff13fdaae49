package pathao

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/parceldesk/pathao-sdk-go/internal/cache"
	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/internal/transport"
	"github.com/parceldesk/pathao-sdk-go/models"
)

// storeListTTL is how long a store listing stays cached. Listings
// change when merchants create stores, so the TTL is short; reference
// data (cities/zones/areas) uses the much longer cache.DefaultTTL.
const storeListTTL = time.Minute

// CacheStats summarises the reference-data cache contents.
type CacheStats struct {
	// Cities, Zones and Areas count the indexed entries of each kind.
	Cities int `json:"cities_cached"`
	Zones  int `json:"zones_cached"`
	Areas  int `json:"areas_cached"`

	// ReferenceDataLoaded reports whether the initial city prefetch has
	// happened on this resource.
	ReferenceDataLoaded bool `json:"reference_data_loaded"`
}

// StoresResource groups store operations: location lookups backed by
// the bulk-prefetch cache, store creation with automatic city/zone/area
// resolution, and store listing.
//
// A StoresResource is obtained from [Client.Stores] and is safe for
// concurrent use.
type StoresResource struct {
	api   transport.API
	cache *cache.Manager
	lists cache.Backend
	log   *logger.Logger

	// guard rejects operations once the owning client is closed.
	guard func() error

	mu              sync.Mutex
	referenceLoaded bool
}

func (s *StoresResource) checkOpen() error {
	if s.guard == nil {
		return nil
	}
	return s.guard()
}

func newStoresResource(api transport.API, manager *cache.Manager, lists cache.Backend, log *logger.Logger) *StoresResource {
	return &StoresResource{api: api, cache: manager, lists: lists, log: log}
}

// GetCities fetches the full list of coverage cities from the API.
func (s *StoresResource) GetCities(ctx context.Context) ([]models.City, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.api.ListCities(ctx)
}

// GetZones fetches all zones of the given city from the API.
func (s *StoresResource) GetZones(ctx context.Context, cityID int) ([]models.Zone, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.api.ListZones(ctx, cityID)
}

// GetAreas fetches all areas of the given zone from the API.
func (s *StoresResource) GetAreas(ctx context.Context, zoneID int) ([]models.Area, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.api.ListAreas(ctx, zoneID)
}

// GetCityID resolves a city name (case-insensitive) to its identifier.
//
// The first call bulk-prefetches the full city list; later calls are
// in-memory lookups. A miss forces one refresh of the cached list
// before failing with [ErrLocationNotFound].
func (s *StoresResource) GetCityID(ctx context.Context, cityName string) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		return 0, fmt.Errorf("%w: city name", ErrEmptyName)
	}

	if err := s.ensureReferenceData(ctx); err != nil {
		return 0, err
	}

	if id, ok := s.cache.CityID(cityName); ok {
		return id, nil
	}

	s.log.Debug().Str("city", cityName).Msg("city not in prefetched data, refreshing")
	if err := s.cache.InvalidateCities(ctx); err != nil {
		return 0, err
	}
	if err := s.cache.PrefetchCities(ctx, s.api.ListCities); err != nil {
		return 0, err
	}

	if id, ok := s.cache.CityID(cityName); ok {
		return id, nil
	}

	return 0, s.locationNotFound("city", cityName, s.cache.CityNames())
}

// GetZoneID resolves a zone name within a city to its identifier,
// bulk-prefetching the city's zones on first use.
func (s *StoresResource) GetZoneID(ctx context.Context, cityID int, zoneName string) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	zoneName = strings.TrimSpace(zoneName)
	if zoneName == "" {
		return 0, fmt.Errorf("%w: zone name", ErrEmptyName)
	}

	if id, ok := s.cache.ZoneID(cityID, zoneName); ok {
		return id, nil
	}

	fetch := func(ctx context.Context) ([]models.Zone, error) {
		return s.api.ListZones(ctx, cityID)
	}

	if err := s.cache.PrefetchZones(ctx, cityID, fetch); err != nil {
		return 0, err
	}
	if id, ok := s.cache.ZoneID(cityID, zoneName); ok {
		return id, nil
	}

	// not in the cached list, refresh once before giving up
	if err := s.cache.InvalidateZones(ctx, cityID); err != nil {
		return 0, err
	}
	if err := s.cache.PrefetchZones(ctx, cityID, fetch); err != nil {
		return 0, err
	}
	if id, ok := s.cache.ZoneID(cityID, zoneName); ok {
		return id, nil
	}

	return 0, s.locationNotFound("zone", zoneName, s.cache.ZoneNames(cityID))
}

// GetAreaID resolves an area name within a zone to its identifier,
// bulk-prefetching the zone's areas on first use.
func (s *StoresResource) GetAreaID(ctx context.Context, zoneID int, areaName string) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	areaName = strings.TrimSpace(areaName)
	if areaName == "" {
		return 0, fmt.Errorf("%w: area name", ErrEmptyName)
	}

	if id, ok := s.cache.AreaID(zoneID, areaName); ok {
		return id, nil
	}

	fetch := func(ctx context.Context) ([]models.Area, error) {
		return s.api.ListAreas(ctx, zoneID)
	}

	if err := s.cache.PrefetchAreas(ctx, zoneID, fetch); err != nil {
		return 0, err
	}
	if id, ok := s.cache.AreaID(zoneID, areaName); ok {
		return id, nil
	}

	if err := s.cache.InvalidateAreas(ctx, zoneID); err != nil {
		return 0, err
	}
	if err := s.cache.PrefetchAreas(ctx, zoneID, fetch); err != nil {
		return 0, err
	}
	if id, ok := s.cache.AreaID(zoneID, areaName); ok {
		return id, nil
	}

	return 0, s.locationNotFound("area", areaName, s.cache.AreaNames(zoneID))
}

// CreateStore validates the input, resolves the city/zone/area
// identifiers from the city name and the address, and registers the
// store with the API.
func (s *StoresResource) CreateStore(ctx context.Context, in models.StoreCreate) (models.Store, error) {
	if err := s.checkOpen(); err != nil {
		return models.Store{}, err
	}

	if err := in.Validate(); err != nil {
		return models.Store{}, err
	}

	addr, err := ParseAddress(in.Address)
	if err != nil {
		return models.Store{}, err
	}

	cityID, err := s.GetCityID(ctx, in.CityName)
	if err != nil {
		return models.Store{}, err
	}
	zoneID, err := s.GetZoneID(ctx, cityID, addr.Zone)
	if err != nil {
		return models.Store{}, err
	}
	areaID, err := s.GetAreaID(ctx, zoneID, addr.Area)
	if err != nil {
		return models.Store{}, err
	}

	store, err := s.api.CreateStore(ctx, transport.StorePayload{
		Name:             in.Name,
		ContactName:      in.ContactName,
		ContactNumber:    in.ContactNumber,
		SecondaryContact: in.SecondaryContact,
		OTPNumber:        in.OTPNumber,
		Address:          in.Address,
		CityID:           cityID,
		ZoneID:           zoneID,
		AreaID:           areaID,
	})
	if err != nil {
		return models.Store{}, err
	}

	s.log.Info().
		Int("store_id", store.StoreID).
		Int("city_id", cityID).
		Int("zone_id", zoneID).
		Int("area_id", areaID).
		Msg("store created")

	return store, nil
}

// ListStores returns the merchant's stores. A non-positive limit
// returns all of them. Results are cached for one minute, so a slightly
// stale listing may be returned in exchange for fewer API calls.
func (s *StoresResource) ListStores(ctx context.Context, limit int) ([]models.Store, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("stores:list:%d", limit)

	if raw, ok, err := s.lists.Get(ctx, key); err == nil && ok {
		var stores []models.Store
		if err = json.Unmarshal(raw, &stores); err == nil {
			return stores, nil
		}
	}

	stores, err := s.api.ListStores(ctx, limit)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stores); err == nil {
		if err = s.lists.Set(ctx, key, raw, storeListTTL); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache store listing")
		}
	}

	return stores, nil
}

// ClearCache removes all cached reference data, forcing fresh fetches
// on the next lookup.
func (s *StoresResource) ClearCache(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.referenceLoaded = false
	s.mu.Unlock()
	return nil
}

// CacheStats reports the reference-data cache contents.
func (s *StoresResource) CacheStats() CacheStats {
	stats := s.cache.Stats()

	s.mu.Lock()
	loaded := s.referenceLoaded
	s.mu.Unlock()

	return CacheStats{
		Cities:              stats.Cities,
		Zones:               stats.Zones,
		Areas:               stats.Areas,
		ReferenceDataLoaded: loaded,
	}
}

// ensureReferenceData lazily loads the city index on first use.
func (s *StoresResource) ensureReferenceData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.referenceLoaded {
		return nil
	}
	if err := s.cache.PrefetchCities(ctx, s.api.ListCities); err != nil {
		return err
	}
	s.referenceLoaded = true
	return nil
}

// refreshReferenceData re-runs the city prefetch; expired cache entries
// are refetched from the API. Used by the background refresh job.
func (s *StoresResource) refreshReferenceData(ctx context.Context) error {
	return s.cache.PrefetchCities(ctx, s.api.ListCities)
}

func (s *StoresResource) locationNotFound(kind, name string, candidates []string) error {
	if suggestion, ok := suggestName(name, candidates); ok {
		return fmt.Errorf("%w: %s %q (did you mean %q?)", ErrLocationNotFound, kind, name, titleCase(suggestion))
	}
	return fmt.Errorf("%w: %s %q", ErrLocationNotFound, kind, name)
}

// titleCase rewrites an uppercase index key ("COX'S BAZAR") into a
// display form ("Cox's Bazar") for error messages.
func titleCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
