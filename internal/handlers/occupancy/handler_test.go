package occupancy_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/occupancy/model"
	occupancyMocks "frontdesk/internal/domains/occupancy/service/mocks"
	"frontdesk/internal/handlers/occupancy"
)

func setup(t *testing.T) (*occupancyMocks.MockOccupancy, http.Handler) {
	ctrl := gomock.NewController(t)
	svc := occupancyMocks.NewMockOccupancy(ctrl)

	handler := occupancy.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))

	return rec
}

func TestHandler_Reconcile(t *testing.T) {
	tests := []struct {
		name     string
		outcome  model.Outcome
		err      error
		wantCode int
	}{
		{name: "updated", outcome: model.OutcomeUpdated, wantCode: http.StatusOK},
		{name: "maintenance is left alone", outcome: model.OutcomeMaintenance, wantCode: http.StatusOK},
		{name: "unknown room", outcome: model.OutcomeNotFound, wantCode: http.StatusNotFound},
		{name: "repository failure", err: errors.New("connection refused"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)

			svc.EXPECT().Reconcile(gomock.Any(), "R101").Return(tt.outcome, tt.err)

			rec := serve(router, "/occupancy/rooms/R101/reconcile")

			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode != http.StatusOK {
				return
			}

			var body struct {
				Data occupancy.ReconcileResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "R101", body.Data.RoomID)
			assert.Equal(t, tt.outcome, body.Data.Outcome)
		})
	}
}

func TestHandler_ReconcileAll(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().
		ReconcileAll(gomock.Any()).
		Return(map[model.Outcome]int{model.OutcomeUpdated: 2, model.OutcomeUnchanged: 5}, nil)

	rec := serve(router, "/occupancy/reconcile")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data occupancy.ReconcileAllResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Data.Outcomes[model.OutcomeUpdated])
	assert.Equal(t, 5, body.Data.Outcomes[model.OutcomeUnchanged])
}
