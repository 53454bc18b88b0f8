package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"salonflow/config"
	"salonflow/models"
	"salonflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogError marks a retryable catalog failure. The core surfaces it to
// the caller and never retries on its own.
type CatalogError struct {
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalogError: %s", e.Message)
}

// Service exposes the tenant's offerings to the booking engine.
type Service interface {
	List(ctx context.Context) ([]models.Service, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Service, error)
}

// DefaultCatalogService fetches the catalog over HTTP and caches successful
// responses in redis so a flaky upstream does not stall every session.
type DefaultCatalogService struct {
	BaseURL string
	Tenant  string
	Client  *http.Client
	Cache   *redis.Client
	TTL     time.Duration
}

// NewCatalogService builds the default catalog service from configuration.
func NewCatalogService(cache *redis.Client) *DefaultCatalogService {
	return &DefaultCatalogService{
		BaseURL: config.AppConfig.CatalogURL,
		Tenant:  config.AppConfig.TenantID,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Cache:   cache,
		TTL:     time.Duration(config.AppConfig.CatalogTTL) * time.Minute,
	}
}

func (s *DefaultCatalogService) cacheKey() string {
	return "catalog:" + s.Tenant
}

// List returns the tenant's services, from cache when fresh.
func (s *DefaultCatalogService) List(ctx context.Context) ([]models.Service, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, s.cacheKey()).Result(); err == nil {
			var services []models.Service
			if decodeErr := json.Unmarshal([]byte(data), &services); decodeErr != nil {
				logger.Warn("discarding corrupt catalog cache entry", zap.Error(decodeErr))
			} else {
				return services, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/services?tenant=%s", s.BaseURL, url.QueryEscape(s.Tenant))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &CatalogError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &CatalogError{Message: "service catalog unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &CatalogError{Message: fmt.Sprintf("catalog API returned status %d", resp.StatusCode)}
	}

	var payload struct {
		Services []models.Service `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &CatalogError{Message: "malformed catalog response"}
	}

	if s.Cache != nil {
		if data, err := json.Marshal(payload.Services); err == nil {
			if err := s.Cache.Set(ctx, s.cacheKey(), data, s.TTL).Err(); err != nil {
				logger.Warn("failed to cache catalog", zap.Error(err))
			}
		}
	}
	return payload.Services, nil
}

// ByIDs resolves service references, erroring on unknown IDs so a session
// can never hold services the tenant does not offer.
func (s *DefaultCatalogService) ByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Service, len(all))
	for _, svc := range all {
		byID[svc.ID] = svc
	}

	services := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, &CatalogError{Message: fmt.Sprintf("unknown service %q", id)}
		}
		services = append(services, svc)
	}
	return services, nil
}
