package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, method string, err error) (*httptest.ResponseRecorder, ErrResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger()).Handler(err, c)

	var body ErrResponse
	if method != http.MethodHead {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.NotNil(t, body.Error)
	}
	return rec, body
}

func TestNewErrorCodeToStatusCodeMaps(t *testing.T) {
	m := NewErrorCodeToStatusCodeMaps()
	assert.Equal(t, http.StatusBadRequest, m[ErrBadParameter])
	assert.Equal(t, http.StatusNotFound, m[ErrEntityNotFound])
	assert.Equal(t, http.StatusInternalServerError, m[ErrInternalServerError])
	assert.Equal(t, http.StatusServiceUnavailable, m[ErrServiceUnavailable])
	assert.Equal(t, http.StatusBadGateway, m[ErrBadGateway])
}

func TestHTTPErrorHandler_Handler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad parameter",
			err:        NewBadParameterError("invalid body", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrBadParameter,
		},
		{
			name:       "entity not found",
			err:        NewEntityNotFoundError("no live instance", nil),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrEntityNotFound,
		},
		{
			name:       "service unavailable",
			err:        NewServiceUnavailableError("catalog unavailable", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrServiceUnavailable,
		},
		{
			name:       "plain error is internal",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrInternalServerError,
		},
		{
			name:       "echo not found is a route miss",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   ErrRouteNotFound,
		},
		{
			name:       "rate limited",
			err:        echo.ErrTooManyRequests,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   ErrTooManyRequests,
		},
		{
			name: "openapi request error",
			err: func() error {
				he := echo.NewHTTPError(http.StatusBadRequest, "request has an error")
				he.Internal = &openapi3filter.RequestError{Err: assert.AnError}
				return he
			}(),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrBadParameter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handle(t, http.MethodGet, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	rec, _ := handle(t, http.MethodHead, NewEntityNotFoundError("gone", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestRegisterErrorHandler(t *testing.T) {
	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger())
	require.NotNil(t, e.HTTPErrorHandler)
}
