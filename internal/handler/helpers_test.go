package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tablereserve/table-reserve/internal/auth"
	"github.com/tablereserve/table-reserve/internal/config"
	"github.com/tablereserve/table-reserve/internal/middleware"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:          "test",
		Port:         "0",
		JWTSecret:    "test-secret",
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
		UploadDir:    t.TempDir(),
	}
}

// newJSONContext builds an echo context around an httptest request carrying
// the given body as JSON.
func newJSONContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// newFormContext builds an echo context around a multipart form with only
// text fields, the shape the admin restaurant endpoints accept.
func newFormContext(t *testing.T, method, target string, fields map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func asPrincipal(c echo.Context, id uint64, email, role string) {
	middleware.SetPrincipal(c, &auth.Principal{ID: id, Email: email, Role: role})
}

func setParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}
