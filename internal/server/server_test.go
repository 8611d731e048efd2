package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePageStartsROVSession(t *testing.T) {
	tc := newTestClient(t, testConfig())

	resp, body := tc.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, 5, strings.Count(body, `name="players"`))
	assert.Equal(t, 2, strings.Count(body, `name="reserves"`))
	assert.Contains(t, body, `value="ROV" class="selected"`)
	assert.Contains(t, body, `name="coach" maxlength="64" placeholder="Enter coach" value="" required/>`)

	sess := tc.session()
	assert.NotEmpty(t, sess.id)

	// The same cookie maps to the same session.
	tc.get("/")
	assert.Same(t, sess, tc.session())
	assert.Equal(t, 1, tc.srv.sessions.Len())
}

func TestHealth(t *testing.T) {
	tc := newTestClient(t, testConfig())
	resp, body := tc.get("/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, true, payload["ok"])
}

func TestStaticStylesheet(t *testing.T) {
	tc := newTestClient(t, testConfig())
	resp, body := tc.get("/static/styles.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Contains(t, body, ".banner")
}

func TestSelectGameResizesFormAndKeepsTeamName(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.get("/")

	resp, _ := tc.post("/game", url.Values{
		"current_game": {"ROV"},
		"game":         {"SF6"},
		"team_name":    {"Solo Squad"},
		"players":      {"a", "b", "c", "d", "e"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, body := tc.get("/")
	assert.Equal(t, 1, strings.Count(body, `name="players"`))
	assert.NotContains(t, body, `name="reserves"`)
	assert.Contains(t, body, `value="Solo Squad"`)
	assert.Contains(t, body, `name="coach" maxlength="64" placeholder="Enter coach" value=""/>`)

	state := tc.session().controller.Snapshot()
	assert.Equal(t, "SF6", string(state.Game))
	assert.Empty(t, state.Players[0].Name)
}

func TestSelectGameRejectsUnknownGame(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.get("/")

	resp, body := tc.post("/game", url.Values{"game": {"Chess"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "unknown game")
	assert.Equal(t, "ROV", string(tc.session().controller.Snapshot().Game))
}

func TestSelectGameFromStaleFormStillSwitches(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "Tekken")

	resp, _ := tc.post("/game", url.Values{"current_game": {"ROV"}, "game": {"Freefire"}, "team_name": {"ignored"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	state := tc.session().controller.Snapshot()
	assert.Equal(t, "Freefire", string(state.Game))
	assert.Empty(t, state.TeamName)
}

func TestRegisterRejectsMissingTeamName(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "SF6")

	resp, body := tc.post("/register", url.Values{
		"current_game": {"SF6"},
		"team_name":    {"  "},
		"players":      {"Alice"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `role="alert">team name required<`)
	assert.Contains(t, body, `value="Alice"`)

	state := tc.session().controller.Snapshot()
	assert.Empty(t, state.Registrations)
	assert.Equal(t, "Alice", state.Players[0].Name)
	assert.False(t, state.Submitted)
}

func TestRegisterRejectsIncompleteRoster(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "Freefire")

	resp, body := tc.post("/register", url.Values{
		"current_game": {"Freefire"},
		"team_name":    {"Fire"},
		"players":      {"a", "b", "", "d"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "must fill all 4 main players")
}

func TestRegisterROVRequiresCoach(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.get("/")

	resp, body := tc.post("/register", url.Values{
		"current_game": {"ROV"},
		"team_name":    {"Dragons"},
		"players":      {"a", "b", "c", "d", "e"},
		"manager":      {"M"},
		"team_leader":  {"L"},
		"coach":        {""},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "coach required")
	assert.Empty(t, tc.session().controller.Registrations())
}

func TestRegisterROVAccepted(t *testing.T) {
	cfg := testConfig()
	cfg.ResetDelay = time.Second
	tc := newTestClient(t, cfg)
	tc.get("/")

	resp, _ := tc.post("/register", url.Values{
		"current_game": {"ROV"},
		"team_name":    {"Dragons"},
		"players":      {"a", "b", "c", "d", "e"},
		"reserves":     {"", "bench"},
		"manager":      {"M"},
		"team_leader":  {"L"},
		"coach":        {"C"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list := tc.session().controller.Registrations()
	require.Len(t, list, 1)
	reg := list[0]
	assert.Equal(t, "Dragons", reg.TeamName)
	require.Len(t, reg.Reserves, 1)
	assert.Equal(t, "bench", reg.Reserves[0].Name)
	require.NotNil(t, reg.Coach)
	assert.Equal(t, "C", *reg.Coach)

	_, body := tc.get("/")
	assert.Contains(t, body, "Registration complete!")
	assert.Contains(t, body, "Registered teams (1)")
	assert.Contains(t, body, "<strong>Coach:</strong> C")
	assert.Contains(t, body, "<li>bench</li>")
}

func TestRegisterRejectsStaleForm(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "SF6")

	resp, body := tc.post("/register", url.Values{
		"current_game": {"ROV"},
		"team_name":    {"Dragons"},
		"players":      {"a", "b", "c", "d", "e"},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "game selection changed")
	state := tc.session().controller.Snapshot()
	assert.Empty(t, state.TeamName)
	assert.Empty(t, state.Registrations)
}

func TestRegisterRejectsExtraSlots(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "SF6")

	resp, _ := tc.post("/register", url.Values{
		"team_name": {"Duo"},
		"players":   {"a", "b"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, tc.session().controller.Snapshot().TeamName)
}

func TestRegisterRejectsOverlongName(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "SF6")

	resp, body := tc.post("/register", url.Values{
		"team_name": {"Solo"},
		"players":   {strings.Repeat("x", maxNameLength+1)},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "names must be 64 characters or fewer")
	assert.Empty(t, tc.session().controller.Registrations())
}

func TestPostsAreRateLimitedPerSession(t *testing.T) {
	cfg := testConfig()
	cfg.SubmitRatePerSec = 0.001
	cfg.SubmitBurst = 2
	tc := newTestClient(t, cfg)
	tc.get("/")

	for i := 0; i < 2; i++ {
		resp, _ := tc.post("/game", url.Values{"game": {"SF6"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}
	resp, _ := tc.post("/game", url.Values{"game": {"Tekken"}})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "SF6", string(tc.session().controller.Snapshot().Game))
}

func TestRegisterRejectsInvalidUTF8(t *testing.T) {
	tc := newTestClient(t, testConfig())
	tc.selectGame("ROV", "SF6")

	resp, body := tc.post("/register", url.Values{
		"current_game": {"SF6"},
		"team_name":    {"Solo\xff"},
		"players":      {"Alice"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "names must be valid text")
	assert.NotContains(t, body, "64 characters")
	assert.Empty(t, tc.session().controller.Registrations())
}

func TestPostWithoutSessionRedirectsToPage(t *testing.T) {
	tc := newTestClient(t, testConfig())

	for _, path := range []string{"/game", "/register"} {
		resp, _ := tc.post(path, url.Values{"game": {"SF6"}, "team_name": {"x"}, "players": {"a"}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		assert.Empty(t, resp.Cookies(), path)
	}
	assert.Equal(t, 0, tc.srv.sessions.Len())
}
