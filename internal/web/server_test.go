package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/stats"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGenerator struct {
	mu     sync.Mutex
	tags   []string
	err    error
	topics []string
}

func (f *fakeGenerator) GenerateTags(_ context.Context, topic string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return f.tags, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.topics)
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

type testEnv struct {
	server *Server
	ctrl   *session.Controller
	gen    *fakeGenerator
	api    *fakeGenerator
	clip   *fakeClipboard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		gen:  &fakeGenerator{tags: []string{"cat", "funny cat", "funny cat video"}},
		api:  &fakeGenerator{tags: []string{"dogs", "dog training"}},
		clip: &fakeClipboard{},
	}
	env.ctrl = session.NewController(env.gen, session.Options{
		Clipboard:         env.clip,
		ResultsReadyDelay: 10 * time.Millisecond,
	})
	t.Cleanup(env.ctrl.Close)

	srv, err := NewServer(Config{}, env.ctrl, env.api)
	require.NoError(t, err)
	srv.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	env.server = srv
	return env
}

func (e *testEnv) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(target string, values url.Values) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, target, values.Encode(), "application/x-www-form-urlencoded")
}

func (e *testEnv) postJSON(target string, body string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, target, body, "application/json")
}

func TestConfigAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", Config{}.Addr())
	assert.Equal(t, "0.0.0.0:9000", Config{Host: "0.0.0.0", Port: 9000}.Addr())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestIndexIdle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Keyword Master")
	assert.Contains(t, body, "Go Viral with Smart Tags")
	assert.Contains(t, body, "Long-Tail Strategy")
	assert.Contains(t, body, "© 2026 Keyword Master. Optimized for Gemini AI.")
	assert.NotContains(t, body, `id="results"`)
	assert.NotContains(t, body, `role="alert"`)
}

func TestGenerateFormShowsResults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/generate", url.Values{"topic": {"cats"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#results", rec.Header().Get("Location"))
	assert.Equal(t, []string{"cats"}, env.gen.topics)

	page := env.do(http.MethodGet, "/", "", "")
	body := page.Body.String()
	assert.Contains(t, body, `id="results"`)
	assert.Contains(t, body, "Results for &#34;cats&#34;")
	assert.Contains(t, body, "Found 3 high-potential keywords")
	assert.Contains(t, body, `class="chip longtail"`)
	assert.Contains(t, body, `action="/tags/2/delete"`)
	assert.Contains(t, body, "Quick Insights")
	assert.Contains(t, body, "High")
}

func TestGenerateFormEmptyTopic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/generate", url.Values{"topic": {"   "}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, env.gen.calls())
	assert.Equal(t, session.Idle, env.ctrl.Snapshot().Status)
}

func TestGenerateFormInFlight(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ctrl.Begin("running")
	require.NoError(t, err)

	rec := env.postForm("/generate", url.Values{"topic": {"cats"}})

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "already running")
	assert.Contains(t, body, "Processing...")
	assert.Contains(t, body, "disabled")
	assert.Zero(t, env.gen.calls())
}

func TestGenerateFormAfterClose(t *testing.T) {
	env := newTestEnv(t)
	env.ctrl.Close()

	rec := env.postForm("/generate", url.Values{"topic": {"cats"}})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "shutting down")
	assert.Zero(t, env.gen.calls())
}

func TestGenerateFormFailureShowsBanner(t *testing.T) {
	env := newTestEnv(t)
	env.gen.err = errors.New("quota exceeded")

	rec := env.postForm("/generate", url.Values{"topic": {"cats"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body := env.do(http.MethodGet, "/", "", "").Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "quota exceeded")
	assert.NotContains(t, body, `id="results"`)
}

func TestDeleteForm(t *testing.T) {
	env := newTestEnv(t)
	env.gen.tags = []string{"a", "b", "c"}
	require.NoError(t, env.ctrl.Generate(context.Background(), "letters"))

	rec := env.postForm("/tags/1/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"a", "c"}, env.ctrl.Snapshot().Tags)

	rec = env.postForm("/tags/9/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"a", "c"}, env.ctrl.Snapshot().Tags)

	rec = env.postForm("/tags/x/delete", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCopyForm(t *testing.T) {
	env := newTestEnv(t)
	env.gen.tags = []string{"a", "b"}
	require.NoError(t, env.ctrl.Generate(context.Background(), "letters"))

	rec := env.postForm("/copy", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"a, b"}, env.clip.writes)
	body := env.do(http.MethodGet, "/", "", "").Body.String()
	assert.Contains(t, body, "Copied!")
	assert.Contains(t, body, `data-tags="a, b"`)
}

func TestCopyFormClipboardError(t *testing.T) {
	env := newTestEnv(t)
	env.clip.err = session.ErrClipboardUnsupported
	require.NoError(t, env.ctrl.Generate(context.Background(), "cats"))

	rec := env.postForm("/copy", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "clipboard not supported")
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/export.csv", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env.gen.tags = []string{"a", "b", "c"}
	require.NoError(t, env.ctrl.Generate(context.Background(), "Tesla Model 3"))

	rec = env.do(http.MethodGet, "/export.csv", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a,b,c", rec.Body.String())
	assert.Equal(t, `attachment; filename="youtube-tags-tesla-model-3.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
}

func TestAPIGenerate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON("/api/v1/generate", `{"topic":" dogs "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dogs", resp.Topic)
	assert.Equal(t, []string{"dogs", "dog training"}, resp.Tags)
	assert.Equal(t, stats.Stats{Broad: 1, Standard: 1, Count: 2, AverageLength: 8}, resp.Stats)

	// The page session is untouched.
	assert.Equal(t, session.Idle, env.ctrl.Snapshot().Status)
	assert.Zero(t, env.gen.calls())
}

func TestAPIGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		genErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "empty topic", body: `{"topic":"  "}`, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "malformed body", body: `{"topic":`, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{
			name:       "generation failure",
			body:       `{"topic":"cats"}`,
			genErr:     &tagger.GenerationError{Kind: tagger.KindAuth, Provider: "gemini", Message: "API key not valid"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "generation_auth",
		},
		{
			name:       "unexpected failure",
			body:       `{"topic":"cats"}`,
			genErr:     errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.api.err = tt.genErr

			rec := env.postJSON("/api/v1/generate", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestAPISessionAndDelete(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ctrl.Generate(context.Background(), "cats"))

	rec := env.do(http.MethodGet, "/api/v1/session", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Topic  string      `json:"topic"`
		Tags   []string    `json:"tags"`
		Status string      `json:"status"`
		Copy   string      `json:"copy"`
		Stats  stats.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "cats", view.Topic)
	assert.Equal(t, "success", view.Status)
	assert.Equal(t, "idle", view.Copy)
	assert.Equal(t, 1, view.Stats.Broad)
	assert.Equal(t, 1, view.Stats.Standard)
	assert.Equal(t, 1, view.Stats.LongTail)

	rec = env.do(http.MethodDelete, "/api/v1/session/tags/0", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, []string{"funny cat", "funny cat video"}, view.Tags)
	assert.Equal(t, 0, view.Stats.Broad)

	rec = env.do(http.MethodDelete, "/api/v1/session/tags/5", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/v1/session/tags/one", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIStats(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON("/api/v1/stats", `{"tags":["ab","abcd"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got stats.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	assert.InDelta(t, 3.0, got.AverageLength, 0.001)

	rec = env.postJSON("/api/v1/stats", `{"tags":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stats.Stats{}, got)
}

func TestStateVersionChanges(t *testing.T) {
	a := session.Snapshot{Status: session.Success, RequestID: "r1", Tags: []string{"a", "b"}}
	b := a
	b.Tags = []string{"a"}
	c := a
	c.Copy = session.CopyCopied

	assert.NotEqual(t, stateVersion(a), stateVersion(b))
	assert.NotEqual(t, stateVersion(a), stateVersion(c))
	assert.Equal(t, stateVersion(a), stateVersion(a))
}

func readEvent(t *testing.T, conn *websocket.Conn) LiveEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event LiveEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestLiveStream(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(env.server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	first := readEvent(t, conn)
	assert.Equal(t, EventState, first.Type)
	require.NotNil(t, first.Session)
	assert.Equal(t, session.Idle, first.Session.Status)

	require.NoError(t, env.ctrl.Generate(context.Background(), "cats"))

	var sawSuccess, sawResults bool
	for i := 0; i < 10 && !(sawSuccess && sawResults); i++ {
		event := readEvent(t, conn)
		switch event.Type {
		case EventState:
			if event.Session.Status == session.Success {
				sawSuccess = true
				assert.Len(t, event.Session.Tags, 3)
				assert.Equal(t, 3, event.Session.Stats.Count)
			}
		case EventResults:
			sawResults = true
		}
	}
	assert.True(t, sawSuccess, "expected a success state event")
	assert.True(t, sawResults, "expected a results event")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	env := newTestEnv(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- env.server.Serve(ctx, listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
