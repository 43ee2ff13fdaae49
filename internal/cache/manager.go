package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/models"
)

const (
	citiesKey   = "bulk:cities"
	zonesKeyFmt = "bulk:zones:%d"
	areasKeyFmt = "bulk:areas:%d"
)

// Manager implements the bulk-prefetch caching strategy for reference
// data: whole lists are fetched in one API call, indexed by uppercase
// name, held in memory for instant lookups, and persisted through a
// [Backend] so warm starts skip the API entirely.
type Manager struct {
	backend Backend
	ttl     time.Duration
	log     *logger.Logger

	mu     sync.RWMutex
	cities map[string]int
	zones  map[int]map[string]int
	areas  map[int]map[string]int
}

// Stats summarises what the manager currently holds in memory.
type Stats struct {
	Cities int `json:"cities_cached"`
	Zones  int `json:"zones_cached"`
	Areas  int `json:"areas_cached"`
}

// NewManager wraps backend with the in-memory index layer.
func NewManager(backend Backend, ttl time.Duration, log *logger.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		backend: backend,
		ttl:     ttl,
		log:     log,
		cities:  make(map[string]int),
		zones:   make(map[int]map[string]int),
		areas:   make(map[int]map[string]int),
	}
}

// PrefetchCities loads the city index from the backend, falling back to
// fetch when the cached copy is missing or expired.
func (m *Manager) PrefetchCities(ctx context.Context, fetch func(context.Context) ([]models.City, error)) error {
	index, err := m.loadIndex(ctx, citiesKey)
	if err != nil {
		return err
	}

	if index == nil {
		cities, err := fetch(ctx)
		if err != nil {
			return err
		}

		index = make(map[string]int, len(cities))
		for _, city := range cities {
			index[strings.ToUpper(city.CityName)] = city.CityID
		}

		if err = m.storeIndex(ctx, citiesKey, index); err != nil {
			return err
		}
		m.log.Debug().Int("cities", len(index)).Msg("prefetched city index")
	}

	m.mu.Lock()
	m.cities = index
	m.mu.Unlock()
	return nil
}

// PrefetchZones loads the zone index of one city, fetching on a miss.
func (m *Manager) PrefetchZones(ctx context.Context, cityID int, fetch func(context.Context) ([]models.Zone, error)) error {
	key := fmt.Sprintf(zonesKeyFmt, cityID)

	index, err := m.loadIndex(ctx, key)
	if err != nil {
		return err
	}

	if index == nil {
		zones, err := fetch(ctx)
		if err != nil {
			return err
		}

		index = make(map[string]int, len(zones))
		for _, zone := range zones {
			index[strings.ToUpper(zone.ZoneName)] = zone.ZoneID
		}

		if err = m.storeIndex(ctx, key, index); err != nil {
			return err
		}
		m.log.Debug().Int("city_id", cityID).Int("zones", len(index)).Msg("prefetched zone index")
	}

	m.mu.Lock()
	m.zones[cityID] = index
	m.mu.Unlock()
	return nil
}

// PrefetchAreas loads the area index of one zone, fetching on a miss.
func (m *Manager) PrefetchAreas(ctx context.Context, zoneID int, fetch func(context.Context) ([]models.Area, error)) error {
	key := fmt.Sprintf(areasKeyFmt, zoneID)

	index, err := m.loadIndex(ctx, key)
	if err != nil {
		return err
	}

	if index == nil {
		areas, err := fetch(ctx)
		if err != nil {
			return err
		}

		index = make(map[string]int, len(areas))
		for _, area := range areas {
			index[strings.ToUpper(area.AreaName)] = area.AreaID
		}

		if err = m.storeIndex(ctx, key, index); err != nil {
			return err
		}
		m.log.Debug().Int("zone_id", zoneID).Int("areas", len(index)).Msg("prefetched area index")
	}

	m.mu.Lock()
	m.areas[zoneID] = index
	m.mu.Unlock()
	return nil
}

// CityID resolves a city name (case-insensitive) from the in-memory index.
func (m *Manager) CityID(name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.cities[strings.ToUpper(name)]
	return id, ok
}

// ZoneID resolves a zone name within a city from the in-memory index.
func (m *Manager) ZoneID(cityID int, name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.zones[cityID][strings.ToUpper(name)]
	return id, ok
}

// AreaID resolves an area name within a zone from the in-memory index.
func (m *Manager) AreaID(zoneID int, name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.areas[zoneID][strings.ToUpper(name)]
	return id, ok
}

// CityNames returns the indexed city names; used for fuzzy suggestions
// in validation errors.
func (m *Manager) CityNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexKeys(m.cities)
}

// ZoneNames returns the indexed zone names of a city.
func (m *Manager) ZoneNames(cityID int) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexKeys(m.zones[cityID])
}

// AreaNames returns the indexed area names of a zone.
func (m *Manager) AreaNames(zoneID int) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexKeys(m.areas[zoneID])
}

// Stats reports the current in-memory index sizes.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Cities: len(m.cities)}
	for _, zones := range m.zones {
		s.Zones += len(zones)
	}
	for _, areas := range m.areas {
		s.Areas += len(areas)
	}
	return s
}

// InvalidateCities drops the persisted city index so the next prefetch
// fetches fresh data from the API.
func (m *Manager) InvalidateCities(ctx context.Context) error {
	return m.backend.Delete(ctx, citiesKey)
}

// InvalidateZones drops the persisted zone index of one city.
func (m *Manager) InvalidateZones(ctx context.Context, cityID int) error {
	return m.backend.Delete(ctx, fmt.Sprintf(zonesKeyFmt, cityID))
}

// InvalidateAreas drops the persisted area index of one zone.
func (m *Manager) InvalidateAreas(ctx context.Context, zoneID int) error {
	return m.backend.Delete(ctx, fmt.Sprintf(areasKeyFmt, zoneID))
}

// Clear drops every persisted entry and resets the in-memory indexes.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.backend.Clear(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.cities = make(map[string]int)
	m.zones = make(map[int]map[string]int)
	m.areas = make(map[int]map[string]int)
	m.mu.Unlock()
	return nil
}

func (m *Manager) loadIndex(ctx context.Context, key string) (map[string]int, error) {
	raw, ok, err := m.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var index map[string]int
	if err = json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("decode cached index %q: %w", key, err)
	}
	return index, nil
}

func (m *Manager) storeIndex(ctx context.Context, key string, index map[string]int) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode index %q: %w", key, err)
	}
	return m.backend.Set(ctx, key, raw, m.ttl)
}

func indexKeys(index map[string]int) []string {
	if len(index) == 0 {
		return nil
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	return names
}
