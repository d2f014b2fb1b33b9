package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	"frontdesk/transport/http/response"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client and user agent in a fixed window kept in the cache.
// The limiter fails open when the cache is unreachable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	settings := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !settings.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			count, err := a.hit(r, key)
			if err != nil {
				log.Warn().Err(err).Msg("Rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			if count > settings.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), key, count, settings.WindowSeconds); err != nil {
				log.Warn().Err(err).Msg("Rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(settings.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, settings.MaxRequests-count)))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(settings.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// hit returns the request count including this one.
func (a *appMiddleware) hit(r *http.Request, key string) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), key, &count)

	switch {
	case errors.Is(err, cache.Nil):
		return 1, nil
	case err != nil:
		return 0, err //nolint:wrapcheck
	default:
		return count + 1, nil
	}
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
