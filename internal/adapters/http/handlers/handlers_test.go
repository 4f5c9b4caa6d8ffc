package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshelf/internal/adapters/http/routes"
	"bookshelf/internal/adapters/http/server"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/config"
	"bookshelf/internal/core/services"
	"bookshelf/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := &config.Config{
		AppMode:  "dev",
		Session:  config.SessionConfig{Secret: "test-secret", Hours: 2},
		Cookie:   config.CookieConfig{SameSite: "Lax"},
		Location: time.UTC,
	}

	repos := repositories.New(db)
	reports := repositories.NewReportRepository(testutil.NewSQLX(t, db))
	svc := services.New(repos, reports, cfg)

	app := server.NewApp(cfg)
	routes.Setup(app, db, svc, cfg)

	return &testApp{app: app, db: db}
}

// do sends a request with an optional JSON body and bearer token
func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

// login returns the session token for a fixture user
func (a *testApp) login(t *testing.T, username string) string {
	t.Helper()

	resp, env := a.do(t, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"username": username,
		"password": testutil.Password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}
