package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

func castVote(t *testing.T, app *TestApp, client *http.Client, competitorID int64) {
	t.Helper()

	body, _ := json.Marshal(map[string]int64{"competitorId": competitorID})
	req, err := http.NewRequest(http.MethodPut, app.Server.URL+"/api/polls/1/selection", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(app.Server.URL+"/api/polls/1/votes", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func getResults(t *testing.T, app *TestApp) domain.PollDashboard {
	t.Helper()

	resp, err := app.Client.Get(app.Server.URL + "/api/polls/1/results")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dashboard domain.PollDashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))
	return dashboard
}

// TestVoteFlow tests: Results -> Vote x3 -> Refresh -> Results reflect the votes
func TestVoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Step 1: initial results, computed on demand
	dashboard := getResults(t, app)
	assert.Equal(t, int64(0), dashboard.Result.TotalVotes)
	require.Len(t, dashboard.Result.Results, 3)
	for _, c := range dashboard.Result.Results {
		assert.Equal(t, "0.00", c.Percentage)
	}

	// Step 2: three sessions vote
	castVote(t, app, app.newVoter(t), 10)
	castVote(t, app, app.newVoter(t), 10)
	castVote(t, app, app.newVoter(t), 20)

	// Step 3: the dashboard only changes after a refresh
	assert.Equal(t, int64(0), getResults(t, app).Result.TotalVotes)
	require.NoError(t, app.RefreshSvc.RefreshAll(context.Background()))

	dashboard = getResults(t, app)
	assert.Equal(t, int64(3), dashboard.Result.TotalVotes)
	assert.Equal(t, "66.67", dashboard.Result.Results[0].Percentage)
	assert.Equal(t, "33.33", dashboard.Result.Results[1].Percentage)
	assert.Equal(t, "Independent", dashboard.Result.Results[1].Party)
	assert.Equal(t, "0.00", dashboard.Result.Results[2].Percentage)
	assert.Equal(t, "30.00", dashboard.Turnout)
}
