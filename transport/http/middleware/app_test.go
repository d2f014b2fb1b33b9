package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/metrics"
	"frontdesk/infras/otel/mocks"
	"frontdesk/shared/cache"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/middleware"
)

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "frontdesk"
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60
	cfg.Metrics.Enable = true

	return cfg
}

func limitedRouter(m middleware.AppMiddleware) http.Handler {
	router := chi.NewRouter()
	router.Use(m.RateLimit())
	router.Get("/v1/rooms", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		getErr    error
		wantCode  int
		wantSaved int
	}{
		{name: "first request in window", getErr: cache.Nil, wantCode: http.StatusOK, wantSaved: 1},
		{name: "below the limit", stored: 1, wantCode: http.StatusOK, wantSaved: 2},
		{name: "limit exceeded", stored: 2, wantCode: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			mockCache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, key string, value any) error {
					assert.True(t, strings.HasPrefix(key, "limiter:"))

					if tt.getErr != nil {
						return tt.getErr
					}

					*(value.(*int)) = tt.stored

					return nil
				})

			if tt.wantSaved > 0 {
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), tt.wantSaved, 60).Return(nil)
			}

			m := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), mockCache, nil)

			rec := httptest.NewRecorder()
			limitedRouter(m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
			}
		})
	}
}

func TestRateLimit_CacheUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	m := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), mockCache, nil)

	rec := httptest.NewRecorder()
	limitedRouter(m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_KeysByForwardedClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "limiter:203.0.113.7:frontdesk-bot", gomock.Any()).Return(cache.Nil)
	mockCache.EXPECT().Save(gomock.Any(), "limiter:203.0.113.7:frontdesk-bot", 1, 60).Return(nil)

	m := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), mockCache, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	req.Header.Set("User-Agent", "frontdesk-bot")

	rec := httptest.NewRecorder()
	limitedRouter(m).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
}

func TestRateLimit_Disabled(t *testing.T) {
	cfg := limiterConfig()
	cfg.App.RateLimiter.Enable = false

	m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil, nil)

	rec := httptest.NewRecorder()
	limitedRouter(m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	cfg := limiterConfig()
	registry := metrics.New(cfg)

	m := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil, registry)

	router := chi.NewRouter()
	router.Use(m.Tracing, m.Metrics)
	router.Get("/v1/rooms/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/R1", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	scrape := httptest.NewRecorder()
	registry.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Contains(t, scrape.Body.String(), `route="/v1/rooms/{id}"`)
	assert.Contains(t, scrape.Body.String(), `status="202"`)
}
