package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-rental/internal/handler"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/utils"
)

const secret = "router-secret"

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newServer() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	RegisterRoutes(e, handler.NewHealthHandler(okPinger{}))
	RegisterOutdoors(e, handler.NewOutdoorHandler(nil, nil), secret, noop)
	RegisterReservations(e, handler.NewReservationHandler(nil), handler.NewReportHandler(nil), secret, noop)
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, role string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		tok, err := utils.NewAccessToken(secret, 1, role, 5)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestHealthIsPublic(t *testing.T) {
	assert.Equal(t, http.StatusOK, call(t, newServer(), http.MethodGet, "/healthz", ""))
}

func TestOutdoorWritesNeedAdmin(t *testing.T) {
	e := newServer()

	assert.Equal(t, http.StatusUnauthorized, call(t, e, http.MethodPost, "/v1/outdoors", ""))
	assert.Equal(t, http.StatusForbidden, call(t, e, http.MethodPost, "/v1/outdoors", model.RoleOperator))
	assert.Equal(t, http.StatusForbidden, call(t, e, http.MethodPut, "/v1/outdoors/1", model.RoleOperator))
	assert.Equal(t, http.StatusForbidden, call(t, e, http.MethodDelete, "/v1/outdoors/1", model.RoleOperator))

	// admin passes the role check and fails on the bad id instead
	assert.Equal(t, http.StatusBadRequest, call(t, e, http.MethodDelete, "/v1/outdoors/x", model.RoleAdmin))
}

func TestStaffRoutes(t *testing.T) {
	e := newServer()

	assert.Equal(t, http.StatusUnauthorized, call(t, e, http.MethodGet, "/v1/reservations", ""))
	assert.Equal(t, http.StatusForbidden, call(t, e, http.MethodGet, "/v1/reservations", "CUSTOMER"))
	// missing period is rejected before the engine is touched
	assert.Equal(t, http.StatusBadRequest, call(t, e, http.MethodGet, "/v1/reservations", model.RoleOperator))
	assert.Equal(t, http.StatusBadRequest, call(t, e, http.MethodGet, "/v1/outdoors/0/availability", model.RoleOperator))
}
