package server

import (
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"esports-registration/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testResetDelay = 60 * time.Millisecond

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ResetDelay = testResetDelay
	cfg.SubmitBurst = 1000
	cfg.SubmitRatePerSec = 1000
	return cfg
}

type testClient struct {
	t      *testing.T
	srv    *Server
	ts     *httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func newTestClient(t *testing.T, cfg config.Config) *testClient {
	t.Helper()
	srv := New(cfg)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{
		t:   t,
		srv: srv,
		ts:  ts,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (tc *testClient) get(path string) (*http.Response, string) {
	tc.t.Helper()
	resp, err := tc.client.Get(tc.ts.URL + path)
	require.NoError(tc.t, err)
	return resp, readBody(tc.t, resp)
}

func (tc *testClient) post(path string, form url.Values) (*http.Response, string) {
	tc.t.Helper()
	resp, err := tc.client.PostForm(tc.ts.URL+path, form)
	require.NoError(tc.t, err)
	return resp, readBody(tc.t, resp)
}

// selectGame loads the page, which starts the session, then switches games.
func (tc *testClient) selectGame(current, game string) {
	tc.t.Helper()
	tc.get("/")
	resp, _ := tc.post("/game", url.Values{"current_game": {current}, "game": {game}})
	require.Equal(tc.t, http.StatusSeeOther, resp.StatusCode)
}

// session returns the server-side session bound to the client's cookie.
func (tc *testClient) session() *formSession {
	tc.t.Helper()
	u, err := url.Parse(tc.ts.URL)
	require.NoError(tc.t, err)
	for _, cookie := range tc.client.Jar.Cookies(u) {
		if cookie.Name != sessionCookie {
			continue
		}
		tc.srv.sessions.mu.Lock()
		sess := tc.srv.sessions.sessions[cookie.Value]
		tc.srv.sessions.mu.Unlock()
		require.NotNil(tc.t, sess, "cookie names an unknown session")
		return sess
	}
	tc.t.Fatal("client has no session cookie")
	return nil
}

func (tc *testClient) cookieHeader() http.Header {
	tc.t.Helper()
	u, err := url.Parse(tc.ts.URL)
	require.NoError(tc.t, err)
	parts := make([]string, 0)
	for _, cookie := range tc.client.Jar.Cookies(u) {
		parts = append(parts, cookie.Name+"="+cookie.Value)
	}
	return http.Header{"Cookie": {strings.Join(parts, "; ")}}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
