package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports/portstest"
	"qaboard/src/infra/config"
)

type testServer struct {
	router *gin.Engine
	store  *portstest.Store
	logs   *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second},
		Log:    config.LogConfig{Level: "info", Format: "text"},
	}
	var logs bytes.Buffer
	store := portstest.NewStore()
	srv := New(cfg, slog.New(slog.NewTextHandler(&logs, nil)), store.Questions(), store.Answers())
	gin.SetMode(gin.TestMode)
	return &testServer{router: srv.Router(), store: store, logs: &logs}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Data  T `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

type created struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (ts *testServer) createQuestion(t *testing.T, title, desc, cat string) int64 {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/questions", map[string]string{
		"title": title, "description": desc, "category": cat,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[created](t, w).Data.ID
}

func TestQuestionLifecycleScenario(t *testing.T) {
	ts := newTestServer(t)

	qid := ts.createQuestion(t, "Q1", "D1", "general")

	w := ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d", qid), nil)
	require.Equal(t, http.StatusOK, w.Code)
	q := decode[domain.Question](t, w).Data
	assert.Equal(t, domain.Question{ID: qid, Title: "Q1", Description: "D1", Category: "general"}, q)

	w = ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/answers", qid), map[string]string{"content": "A1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d/answers", qid), nil)
	require.Equal(t, http.StatusOK, w.Code)
	answers := decode[[]domain.Answer](t, w).Data
	require.Len(t, answers, 1)
	assert.Equal(t, "A1", answers[0].Content)

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/questions/%d", qid), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d", qid), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "question not found", decode[any](t, w).Error.Message)

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d/answers", qid), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, ts.store.AnswerCount(qid))
}

func TestCreateQuestionValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/questions", map[string]string{"title": "Q1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/questions", map[string]string{
		"title": "Q1", "description": "   ", "category": "general",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[any](t, w)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "description", env.Error.Field)
}

func TestUpdateQuestion(t *testing.T) {
	ts := newTestServer(t)
	qid := ts.createQuestion(t, "Q1", "D1", "general")

	w := ts.do(t, http.MethodPut, fmt.Sprintf("/questions/%d", qid), map[string]string{
		"title": " Q2 ", "description": "D2", "category": "math",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d", qid), nil)
	assert.Equal(t, "Q2", decode[domain.Question](t, w).Data.Title)

	w = ts.do(t, http.MethodPut, "/questions/424242", map[string]string{
		"title": "Q", "description": "D", "category": "C",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNonNumericIDIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/questions/abc", "/questions/-1/answers", "/answers/x/score"} {
		w := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.createQuestion(t, "Go tips", "d", "Mathematics")
	ts.createQuestion(t, "Rust tips", "d", "history")

	w := ts.do(t, http.MethodGet, "/questions/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/questions/search?category=MATH", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]domain.Question](t, w).Data
	require.Len(t, got, 1)
	assert.Equal(t, "Go tips", got[0].Title)

	w = ts.do(t, http.MethodGet, "/questions/search?title=zzz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.Question](t, w).Data)
}

func TestVotingAndScore(t *testing.T) {
	ts := newTestServer(t)
	qid := ts.createQuestion(t, "Q1", "D1", "general")

	w := ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/answers", qid), map[string]string{"content": "A1"})
	require.Equal(t, http.StatusCreated, w.Code)
	aid := decode[created](t, w).Data.ID

	for _, v := range []int{0, 2, -5} {
		w = ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/vote", qid), map[string]int{"vote": v})
		assert.Equal(t, http.StatusBadRequest, w.Code, "question vote %d", v)
		w = ts.do(t, http.MethodPost, fmt.Sprintf("/answers/%d/vote", aid), map[string]int{"vote": v})
		assert.Equal(t, http.StatusBadRequest, w.Code, "answer vote %d", v)
	}

	w = ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/vote", qid), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, v := range []int{1, 1, 1, -1} {
		w = ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/vote", qid), map[string]int{"vote": v})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/answers/%d/vote", aid), map[string]int{"vote": -1})
	require.Equal(t, http.StatusOK, w.Code)

	type score struct {
		ID    int64 `json:"id"`
		Score int64 `json:"score"`
	}
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d/score", qid), nil)
	assert.Equal(t, int64(2), decode[score](t, w).Data.Score)
	w = ts.do(t, http.MethodGet, fmt.Sprintf("/answers/%d/score", aid), nil)
	assert.Equal(t, int64(-1), decode[score](t, w).Data.Score)

	w = ts.do(t, http.MethodPost, "/answers/999999/vote", map[string]int{"vote": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnswerValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/questions/999999/answers", map[string]string{"content": "A1"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	qid := ts.createQuestion(t, "Q1", "D1", "general")
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/answers", qid), map[string]string{
		"content": strings.Repeat("a", domain.MaxAnswerLength+1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, ts.store.AnswerCount(qid))
}

func TestDeleteAnswersKeepsQuestion(t *testing.T) {
	ts := newTestServer(t)
	qid := ts.createQuestion(t, "Q1", "D1", "general")
	for i := 0; i < 3; i++ {
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/questions/%d/answers", qid), map[string]string{"content": "A"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.do(t, http.MethodDelete, fmt.Sprintf("/questions/%d/answers", qid), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, ts.store.AnswerCount(qid))

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/questions/%d", qid), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStorageFailureHidesCause(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Err = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	w := ts.do(t, http.MethodGet, "/questions", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, ts.logs.String(), "10.0.0.5")
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	ts.store.Err = errors.New("down")
	w = ts.do(t, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = ts.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "qaboard_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, w).Error.Code)
}
