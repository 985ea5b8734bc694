package fixtures

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap-static/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"teams": [{"id": 1, "name": "Arsenal"}, {"id": 2, "name": "Liverpool"}, {"id": 3, "name": "Chelsea"}]}`))
	})
	mux.HandleFunc("/fixtures/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"event": 5, "team_h": 2, "team_a": 1},
			{"event": 5, "team_h": 3, "team_a": 99},
			{"event": 6, "team_h": 1, "team_a": 3}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFPLClient_Matches(t *testing.T) {
	srv := newTestServer(t)
	client := NewFPLClient(srv.URL, 5*time.Second, 10, 5, testLogger())

	matches, err := client.Matches(context.Background(), 5)
	require.NoError(t, err)

	// The unknown-team fixture and the gameweek-6 fixture are skipped.
	require.Len(t, matches, 1)
	assert.Equal(t, "Liverpool", matches[0].HomeTeam)
	assert.Equal(t, "Arsenal", matches[0].AwayTeam)
}

func TestFPLClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewFPLClient(srv.URL, 5*time.Second, 10, 5, testLogger())
	_, err := client.Matches(context.Background(), 5)
	require.Error(t, err)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.csv")
	csv := "gameweek,home_team,away_team\n5,Liverpool,Arsenal\n6,Chelsea,Spurs\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	source := NewCSVSource(path)
	matches, err := source.Matches(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Liverpool", matches[0].HomeTeam)

	matches, err = source.Matches(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
