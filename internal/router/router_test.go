package router

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"io.winapps.vybes/internal/metrics"
	"io.winapps.vybes/internal/session"
	"io.winapps.vybes/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine   *gin.Engine
	store    *store.MemoryStore
	sessions *session.Manager
}

func newTestServer(t *testing.T, opts session.Options) *testServer {
	t.Helper()
	st := store.NewMemoryStore()
	logger := zap.NewNop().Sugar()
	collector := metrics.NewCollector("test")
	opts.Logger = logger
	opts.Observer = collector
	sessions := session.NewManager(st, opts)
	return &testServer{
		engine:   New(Deps{Store: st, Sessions: sessions, Metrics: collector, Logger: logger}),
		store:    st,
		sessions: sessions,
	}
}

func (s *testServer) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t, session.Options{})

	w := srv.post(t, "/api/v1/sessions/open-session", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	opened := decode(t, w)
	sessionID := opened["sessionId"].(string)
	assert.EqualValues(t, 0, opened["rowCount"])
	assert.Nil(t, opened["scrollTargetIndex"])

	w = srv.post(t, "/api/v1/entries/create-entry", gin.H{"sessionId": sessionID, "body": "Hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode(t, w)
	assert.Equal(t, "Hello", first["body"])
	assert.EqualValues(t, 0, first["scrollTargetIndex"])

	w = srv.post(t, "/api/v1/entries/create-entry", gin.H{"sessionId": sessionID, "body": "World"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["scrollTargetIndex"])

	w = srv.post(t, "/api/v1/sessions/get-rows", gin.H{"sessionId": sessionID})
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode(t, w)
	assert.EqualValues(t, 2, rows["rowCount"])
	assert.EqualValues(t, 1, rows["scrollTargetIndex"])
	assert.EqualValues(t, 2, rows["version"])
	list := rows["rows"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "Hello", list[0].(map[string]interface{})["body"])
	assert.Equal(t, "World", list[1].(map[string]interface{})["body"])

	w = srv.post(t, "/api/v1/sessions/get-row", gin.H{"sessionId": sessionID, "index": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "World", decode(t, w)["row"].(map[string]interface{})["body"])

	w = srv.post(t, "/api/v1/sessions/get-row", gin.H{"sessionId": sessionID, "index": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = srv.post(t, "/api/v1/sessions/get-row", gin.H{"sessionId": sessionID, "index": -1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = srv.post(t, "/api/v1/sessions/get-row", gin.H{"sessionId": sessionID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.post(t, "/api/v1/sessions/close-session", gin.H{"sessionId": sessionID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isClosed"])

	w = srv.post(t, "/api/v1/sessions/get-rows", gin.H{"sessionId": sessionID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = srv.post(t, "/api/v1/entries/create-entry", gin.H{"sessionId": sessionID, "body": "late"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A new session sees the persisted history.
	w = srv.post(t, "/api/v1/sessions/open-session", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	reopened := decode(t, w)
	assert.EqualValues(t, 2, reopened["rowCount"])
	assert.EqualValues(t, 1, reopened["scrollTargetIndex"])
}

func TestCreateEntry(t *testing.T) {
	t.Run("Should accept an empty body", func(t *testing.T) {
		srv := newTestServer(t, session.Options{})
		w := srv.post(t, "/api/v1/entries/create-entry", gin.H{"body": ""})
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode(t, w)
		assert.Equal(t, "", created["body"])
		assert.NotEmpty(t, created["id"])
		_, hasTarget := created["scrollTargetIndex"]
		assert.False(t, hasTarget)
	})

	t.Run("Should reject an empty body when configured", func(t *testing.T) {
		srv := newTestServer(t, session.Options{RejectEmptyEntries: true})
		w := srv.post(t, "/api/v1/entries/create-entry", gin.H{"body": " "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		srv := newTestServer(t, session.Options{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/create-entry", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		srv.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should 404 for an unknown session", func(t *testing.T) {
		srv := newTestServer(t, session.Options{})
		w := srv.post(t, "/api/v1/entries/create-entry", gin.H{"sessionId": "nope", "body": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetEntry(t *testing.T) {
	srv := newTestServer(t, session.Options{})

	w := srv.post(t, "/api/v1/entries/create-entry", gin.H{"body": "keep me"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = srv.post(t, "/api/v1/entries/get-entry", gin.H{"entryId": id})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "keep me", decode(t, w)["body"])

	w = srv.post(t, "/api/v1/entries/get-entry", gin.H{"entryId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.post(t, "/api/v1/entries/get-entry", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEntries(t *testing.T) {
	srv := newTestServer(t, session.Options{})
	for _, body := range []string{"a", "b", "c"} {
		require.Equal(t, http.StatusCreated, srv.post(t, "/api/v1/entries/create-entry", gin.H{"body": body}).Code)
	}

	w := srv.post(t, "/api/v1/entries/list-entries?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	entries := res["entries"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, "c", entries[0].(map[string]interface{})["body"])

	pagination := res["pagination"].(map[string]interface{})
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 2, pagination["totalPages"])
	assert.Equal(t, false, pagination["hasNext"])
	assert.Equal(t, true, pagination["hasPrevious"])

	w = srv.post(t, "/api/v1/entries/list-entries", gin.H{"page": 1, "limit": 2})
	require.Equal(t, http.StatusOK, w.Code)
	res = decode(t, w)
	assert.Len(t, res["entries"].([]interface{}), 2)
	assert.Equal(t, true, res["pagination"].(map[string]interface{})["hasNext"])
}

func TestExportEntries(t *testing.T) {
	srv := newTestServer(t, session.Options{})
	var dates []string
	for _, body := range []string{"first", "has, comma", ""} {
		w := srv.post(t, "/api/v1/entries/create-entry", gin.H{"body": body})
		require.Equal(t, http.StatusCreated, w.Code)
		dates = append(dates, decode(t, w)["date"].(string))
	}

	w := srv.post(t, "/api/v1/entries/export-entries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"id", "date", "body", "createdAt", "updatedAt"}, records[0])
	assert.Equal(t, "first", records[1][2])
	assert.Equal(t, "has, comma", records[2][2])
	assert.Equal(t, "", records[3][2])
	for i, date := range dates {
		assert.Equal(t, date, records[i+1][1], "exported date must match the JSON date")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, session.Options{})
	srv.post(t, "/api/v1/sessions/open-session", nil)

	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["sessions"])

	w = httptest.NewRecorder()
	srv.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_sessions_opened_total 1")
}
