package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalShafiq/word-battle-game/internal/api"
	"github.com/iqbalShafiq/word-battle-game/internal/api/response"
	"github.com/iqbalShafiq/word-battle-game/internal/factory"
	"github.com/iqbalShafiq/word-battle-game/internal/services/auth"
	"github.com/iqbalShafiq/word-battle-game/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		DictionaryPath: "../../data/words.txt",
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		WordsService:     app.WordsService,
		ScoringService:   app.ScoringService,
		WebsocketHandler: app.WebsocketHandler,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its auth response
func (ts *testServer) register(t *testing.T, username string) response.AuthResponse {
	t.Helper()

	body := map[string]string{"username": username, "password": "correct horse battery"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.register(t, "alice")
	assert.Equal(t, "alice", resp.Player.Username)
	assert.NotEmpty(t, resp.Player.ID)
	assert.NotEmpty(t, resp.SessionToken)
	assert.Zero(t, resp.Player.Stats.GamesPlayed)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "another password"}
	rr := ts.request(http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestRegister_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/register", map[string]string{"username": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/register", map[string]string{"password": "pw"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	registered := ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "correct horse battery"}
	rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, registered.Player.ID, resp.Player.ID)
	assert.NotEmpty(t, resp.SessionToken)
	assert.NotEqual(t, registered.SessionToken, resp.SessionToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestLogin_UnknownUser(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "nobody", "password": "whatever"}
	rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	registered := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/api/players/me", nil, registered.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var player response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	assert.Equal(t, registered.Player.ID, player.ID)
	assert.Equal(t, "alice", player.Username)
}

func TestGetMe_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/players/me", nil, "tok_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestValidateWord(t *testing.T) {
	ts := newTestServer(t)
	registered := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/words/validate",
		map[string]any{"word": "cat"}, registered.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.ValidateWord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "cat", resp.Word)
	assert.True(t, resp.Valid)
	assert.Positive(t, resp.Score)
}

func TestValidateWord_NotAWord(t *testing.T) {
	ts := newTestServer(t)
	registered := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/words/validate",
		map[string]any{"word": "zzzz"}, registered.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ValidateWord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Zero(t, resp.Score)
}

func TestValidateWord_AgainstLetterPool(t *testing.T) {
	ts := newTestServer(t)
	registered := ts.register(t, "alice")

	// "cat" is a word but cannot be formed from this pool
	rr := ts.request(http.MethodPost, "/api/words/validate",
		map[string]any{"word": "cat", "letters": []string{"x", "y", "z", "c", "a"}},
		registered.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ValidateWord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)

	// And it can be formed from this one
	rr = ts.request(http.MethodPost, "/api/words/validate",
		map[string]any{"word": "cat", "letters": []string{"c", "a", "t", "s"}},
		registered.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestValidateWord_MissingWord(t *testing.T) {
	ts := newTestServer(t)
	registered := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/words/validate",
		map[string]any{}, registered.SessionToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidateWord_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/words/validate",
		map[string]any{"word": "cat"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
