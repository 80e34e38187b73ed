package verse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/daily-verse-api/pkg/response"
)

func newTestRouter(repo Repository, now func() time.Time) http.Handler {
	handler := VerseHandler{selector: NewSelector(repo, 42), now: now}

	r := chi.NewRouter()
	r.Get("/verse/today", handler.GetDailyVerseHandler)
	r.Get("/verse/random", handler.GetRandomVerseHandler)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (response.APIResponse, map[string]any) {
	t.Helper()

	var env response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))

	data, _ := env.Data.(map[string]any)
	return env, data
}

func TestGetDailyVerseHandler(t *testing.T) {
	repo := newFakeRepo(mkVerse("Genesis", 1, 1), mkVerse("Exodus", 1, 1))
	now := func() time.Time { return day(1) }
	router := newTestRouter(repo, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verse/today", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env, data := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "2025-01-01", data["date"])
	assert.NotEmpty(t, data["reference"])
	assert.Equal(t, "text", data["kjv"])

	// Polling within the same day returns the identical verse.
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/verse/today", nil))
	require.Equal(t, http.StatusOK, rec2.Code)
	_, data2 := decodeEnvelope(t, rec2)
	assert.Equal(t, data["reference"], data2["reference"])
	assert.Equal(t, 1, repo.selectionCount())
}

func TestGetDailyVerseHandlerExhausted(t *testing.T) {
	repo := newFakeRepo(mkVerse("Genesis", 1, 1))
	router := newTestRouter(repo, func() time.Time { return day(2) })

	// Consume the single verse on an earlier date.
	require.NoError(t, repo.CreateSelection(t.Context(), day(1), 1))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verse/today", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	env, _ := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Verse corpus exhausted", env.Message)
}

func TestGetRandomVerseHandler(t *testing.T) {
	repo := newFakeRepo(mkVerse("John", 11, 35))
	router := newTestRouter(repo, time.Now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verse/random", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env, data := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "John 11:35", data["reference"])
	assert.Equal(t, 0, repo.selectionCount())
}

func TestGetRandomVerseHandlerEmptyCorpus(t *testing.T) {
	router := newTestRouter(newFakeRepo(), time.Now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verse/random", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	env, _ := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}
