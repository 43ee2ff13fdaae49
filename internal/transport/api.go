package transport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/parceldesk/pathao-sdk-go/models"
)

func (h *httpTransport) ListCities(ctx context.Context) ([]models.City, error) {
	body, err := h.doAuthed(ctx, http.MethodGet, cityListPath, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}

	var data models.CityListData
	if err = decodeEnvelope(body, &data); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return data.Cities, nil
}

func (h *httpTransport) ListZones(ctx context.Context, cityID int) ([]models.Zone, error) {
	body, err := h.doAuthed(ctx, http.MethodGet, fmt.Sprintf(zoneListPath, cityID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list zones for city %d: %w", cityID, err)
	}

	var data models.ZoneListData
	if err = decodeEnvelope(body, &data); err != nil {
		return nil, fmt.Errorf("list zones for city %d: %w", cityID, err)
	}
	return data.Zones, nil
}

func (h *httpTransport) ListAreas(ctx context.Context, zoneID int) ([]models.Area, error) {
	body, err := h.doAuthed(ctx, http.MethodGet, fmt.Sprintf(areaListPath, zoneID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list areas for zone %d: %w", zoneID, err)
	}

	var data models.AreaListData
	if err = decodeEnvelope(body, &data); err != nil {
		return nil, fmt.Errorf("list areas for zone %d: %w", zoneID, err)
	}
	return data.Areas, nil
}

func (h *httpTransport) ListStores(ctx context.Context, limit int) ([]models.Store, error) {
	var query map[string]string
	if limit > 0 {
		query = map[string]string{"limit": strconv.Itoa(limit)}
	}

	body, err := h.doAuthed(ctx, http.MethodGet, storesPath, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	var data models.StoreListData
	if err = decodeEnvelope(body, &data); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return data.Stores, nil
}

func (h *httpTransport) CreateStore(ctx context.Context, payload StorePayload) (models.Store, error) {
	body, err := h.doAuthed(ctx, http.MethodPost, storesPath, nil, payload)
	if err != nil {
		return models.Store{}, fmt.Errorf("create store: %w", err)
	}

	var data models.StoreCreatedData
	if err = decodeEnvelope(body, &data); err != nil {
		return models.Store{}, fmt.Errorf("create store: %w", err)
	}
	return data.Store, nil
}

// doAuthed performs an authenticated request. When the server answers
// 401 despite a fresh-looking token, the transport re-authenticates once
// and replays the request before giving up.
func (h *httpTransport) doAuthed(ctx context.Context, method, path string, query map[string]string, body any) ([]byte, error) {
	if err := h.ensureToken(ctx); err != nil {
		return nil, err
	}

	resp, err := h.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		h.log.Debug().Str("path", path).Msg("401 with held token, re-authenticating")
		if err = h.reauthenticate(ctx); err != nil {
			return nil, err
		}
		resp, err = h.send(ctx, method, path, query, body)
		if err != nil {
			return nil, err
		}
	}

	if err = mapAPIError(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (h *httpTransport) send(ctx context.Context, method, path string, query map[string]string, body any) (*resty.Response, error) {
	req := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.Token().AccessToken)

	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
