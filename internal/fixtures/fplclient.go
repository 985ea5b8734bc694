package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/openfpl/scout-api/internal/models"
)

// FPLClient fetches the official Fantasy Premier League schedule. It
// is the production ScheduleSource: fixtures come from
// /fixtures/?event=N with team ids joined against the bootstrap-static
// team table.
type FPLClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *logrus.Logger

	mu    sync.Mutex
	teams map[int]string
}

type fplFixture struct {
	Event *int `json:"event"`
	TeamH int  `json:"team_h"`
	TeamA int  `json:"team_a"`
}

type fplBootstrap struct {
	Teams []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"teams"`
}

func NewFPLClient(baseURL string, timeout time.Duration, requestsPerSecond int, breakerThreshold int, logger *logrus.Logger) *FPLClient {
	settings := gobreaker.Settings{
		Name:        "fpl-api",
		MaxRequests: uint32(breakerThreshold),
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &FPLClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:     logger,
	}
}

// Matches returns the home/away pairs scheduled for the gameweek.
func (c *FPLClient) Matches(ctx context.Context, gameweek int) ([]models.Match, error) {
	teams, err := c.teamTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team table: %w", err)
	}

	var fixtures []fplFixture
	if err := c.getJSON(ctx, fmt.Sprintf("/fixtures/?event=%d", gameweek), &fixtures); err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures for gameweek %d: %w", gameweek, err)
	}

	matches := make([]models.Match, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Event == nil || *f.Event != gameweek {
			continue
		}
		home, homeOK := teams[f.TeamH]
		away, awayOK := teams[f.TeamA]
		if !homeOK || !awayOK {
			c.logger.WithFields(logrus.Fields{
				"team_h": f.TeamH,
				"team_a": f.TeamA,
			}).Warn("Fixture references unknown team id, skipping")
			continue
		}
		matches = append(matches, models.Match{HomeTeam: home, AwayTeam: away})
	}
	return matches, nil
}

// teamTable fetches the id -> name table once and caches it for the
// life of the process.
func (c *FPLClient) teamTable(ctx context.Context) (map[int]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.teams != nil {
		return c.teams, nil
	}

	var bootstrap fplBootstrap
	if err := c.getJSON(ctx, "/bootstrap-static/", &bootstrap); err != nil {
		return nil, err
	}

	teams := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teams[t.ID] = t.Name
	}
	c.teams = teams
	return teams, nil
}

func (c *FPLClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "openfpl-scout/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(body.([]byte), dest)
}
