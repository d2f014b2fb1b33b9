package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"frontdesk/config"
	"frontdesk/transport/http/router"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		state    ServerState
		wantCode int
	}{
		{name: "ready", state: ServerStateReady, wantCode: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, wantCode: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&config.Config{}, router.Router{}, nil, nil)
			h.state.Store(int32(tt.state))

			rec := httptest.NewRecorder()
			h.health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
