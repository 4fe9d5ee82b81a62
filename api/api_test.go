package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schlac/mazepath/api"
	"github.com/schlac/mazepath/logging"
	"github.com/schlac/mazepath/repo"
	"github.com/schlac/mazepath/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHandler(t *testing.T, checks map[string]api.Pinger) http.Handler {
	t.Helper()
	log := logging.Discard()
	svc := service.New(service.Config{Logger: log, MaxMazeBytes: 2048})
	r := api.NewRouter(api.Config{
		BaseURL: "/api",
		Logger:  log,
		Controllers: []api.Controller{
			api.NewSolveController(svc, log),
			api.NewHealthController(checks),
		},
	})
	return r.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestSolve_RoundTrip(t *testing.T) {
	h := newHandler(t, nil)

	w := do(t, h, http.MethodPost, "/api/v1/solve", api.SolveRequest{Maze: "#####\n#..E#\n#S..#\n#####"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var got api.SolveResponse
	decode(t, w, &got)
	assert.Equal(t, int64(1003), got.MinCost)
	assert.Equal(t, 4, got.TileCount)
	assert.False(t, got.NoRoute)

	w = do(t, h, http.MethodGet, "/api/v1/solve/"+got.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again api.SolveResponse
	decode(t, w, &again)
	assert.Equal(t, got.ID, again.ID)

	w = do(t, h, http.MethodGet, "/api/v1/solves?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Solves []api.SolveResponse `json:"solves"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Solves, 1)
}

func TestSolve_Statuses(t *testing.T) {
	h := newHandler(t, nil)
	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"NoRoute", http.MethodPost, "/api/v1/solve", api.SolveRequest{Maze: "#####\n#S#E#\n#####"}, http.StatusOK},
		{"BadJSON", http.MethodPost, "/api/v1/solve", "{", http.StatusBadRequest},
		{"MissingField", http.MethodPost, "/api/v1/solve", map[string]string{}, http.StatusBadRequest},
		{"Malformed", http.MethodPost, "/api/v1/solve", api.SolveRequest{Maze: "##\n#S#E"}, http.StatusUnprocessableEntity},
		{"NoEnd", http.MethodPost, "/api/v1/solve", api.SolveRequest{Maze: "###\n#S#\n###"}, http.StatusUnprocessableEntity},
		{"TooLarge", http.MethodPost, "/api/v1/solve", api.SolveRequest{Maze: strings.Repeat("#", 3000)}, http.StatusRequestEntityTooLarge},
		{"BadID", http.MethodGet, "/api/v1/solve/xyz", nil, http.StatusBadRequest},
		{"UnknownID", http.MethodGet, "/api/v1/solve/5f1c1d1e-0000-4000-8000-000000000000", nil, http.StatusNotFound},
		{"BadLimit", http.MethodGet, "/api/v1/solves?limit=0", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, tc.method, tc.path, tc.body)
			require.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestSolve_NoRouteBody(t *testing.T) {
	h := newHandler(t, nil)
	w := do(t, h, http.MethodPost, "/api/v1/solve", api.SolveRequest{Maze: "#####\n#S#E#\n#####"})
	require.Equal(t, http.StatusOK, w.Code)
	var got api.SolveResponse
	decode(t, w, &got)
	assert.True(t, got.NoRoute)
}

// failingSolver returns err from every call.
type failingSolver struct{ err error }

func (f failingSolver) Solve(context.Context, string) (*repo.Record, error) { return nil, f.err }
func (f failingSolver) ByID(context.Context, string) (*repo.Record, error)  { return nil, f.err }
func (f failingSolver) Recent(context.Context, int) ([]*repo.Record, error) { return nil, f.err }

func TestSolve_InternalErrorHidden(t *testing.T) {
	log := logging.Discard()
	h := api.NewRouter(api.Config{
		Logger:      log,
		Controllers: []api.Controller{api.NewSolveController(failingSolver{errors.New("mongo down")}, log)},
	}).Handler()

	w := do(t, h, http.MethodPost, "/v1/solve", api.SolveRequest{Maze: "x"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo")
}

func TestRouter_ServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	r := api.NewRouter(api.Config{
		BaseURL:         "/api",
		Logger:          logging.Discard(),
		Controllers:     []api.Controller{api.NewHealthController(nil)},
		ShutdownTimeout: time.Second,
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/healthz")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	_, err = http.Get("http://" + ln.Addr().String() + "/api/v1/healthz")
	require.Error(t, err, "listener is closed after shutdown")
}

func TestHealth(t *testing.T) {
	h := newHandler(t, map[string]api.Pinger{
		"cache": api.PingFunc(func(context.Context) error { return nil }),
	})
	w := do(t, h, http.MethodGet, "/api/v1/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	h = newHandler(t, map[string]api.Pinger{
		"store": api.PingFunc(func(context.Context) error { return errors.New("unreachable") }),
	})
	w = do(t, h, http.MethodGet, "/api/v1/healthz", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, "degraded", body["status"])
}
