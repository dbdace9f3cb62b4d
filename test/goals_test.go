package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/goals/tracker"
	"github.com/2beens/fittrack/internal/healthdata"
)

func (s *IntegrationTestSuite) TestGoals() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	owner := "goals-user"
	today := time.Now().UTC()

	createReq := tracker.CreateGoalRequest{
		Owner:       owner,
		Metric:      goals.MetricWeight,
		StartValue:  80,
		TargetValue: 70,
		StartDate:   today.AddDate(0, 0, -10).Format(time.DateOnly),
		TargetDate:  today.AddDate(0, 0, 20).Format(time.DateOnly),
	}
	var created goals.Goal
	require.Equal(t, http.StatusCreated, s.doJSON(ctx, http.MethodPost, "/goals", createReq, &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, goals.StatusActive, created.Status)
	assert.Equal(t, 80.0, created.CurrentValue)

	// second active goal on the same metric is rejected
	assert.Equal(t, http.StatusConflict, s.doJSON(ctx, http.MethodPost, "/goals", createReq, nil))

	// a health entry feeds the active goal
	weight := 75.0
	height := 180.0
	var added healthdata.AddResult
	require.Equal(t, http.StatusCreated, s.doJSON(ctx, http.MethodPost, "/health/entries", healthdata.Entry{
		Owner:  owner,
		Weight: &weight,
		Height: &height,
	}, &added))
	require.NotNil(t, added.Entry.BMI)
	assert.InDelta(t, 23.148, *added.Entry.BMI, 0.001)
	require.Len(t, added.GoalUpdates, 1)
	assert.Equal(t, created.ID, added.GoalUpdates[0].Goal.ID)
	assert.Equal(t, 75.0, added.GoalUpdates[0].Goal.CurrentValue)
	assert.False(t, added.GoalUpdates[0].Completed)

	var progress goals.Progress
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/goals/%d/progress", created.ID), nil, &progress))
	assert.Equal(t, 50.0, progress.Percentage)
	assert.Equal(t, 20, progress.RemainingDays)
	assert.Equal(t, goals.DirectionDecreasing, progress.Direction)

	// reaching the target completes the goal
	var observed tracker.ObservationResult
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodPost, "/goals/observe", tracker.ObserveRequest{
		Owner:  owner,
		Metric: goals.MetricWeight,
		Value:  69.5,
	}, &observed))
	assert.True(t, observed.Completed)
	assert.Equal(t, goals.StatusCompleted, observed.Goal.Status)

	var completed []goals.Goal
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/goals/owner/"+owner+"?status=completed", nil, &completed))
	require.Len(t, completed, 1)
	assert.Equal(t, created.ID, completed[0].ID)

	// no active goal left
	assert.Equal(t, http.StatusNotFound, s.doJSON(ctx, http.MethodPost, "/goals/observe", tracker.ObserveRequest{
		Owner:  owner,
		Metric: goals.MetricWeight,
		Value:  69,
	}, nil))

	var deleted tracker.DeleteGoalResponse
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", created.ID), nil, &deleted))
	assert.Equal(t, created.ID, deleted.DeletedID)
	assert.Equal(t, http.StatusNotFound, s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/goals/%d", created.ID), nil, nil))
}

func (s *IntegrationTestSuite) TestHealthEntries() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	owner := "entries-user"

	for i, water := range []float64{2000, 2500, 3000} {
		water := water
		recordedAt := time.Now().UTC().Add(-time.Duration(3-i) * time.Hour)
		require.Equal(t, http.StatusCreated, s.doJSON(ctx, http.MethodPost, "/health/entries", healthdata.Entry{
			Owner:       owner,
			WaterIntake: &water,
			RecordedAt:  recordedAt,
		}, nil))
	}

	var page healthdata.ListResponse
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/health/entries/owner/"+owner+"/page/1/size/2", nil, &page))
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Entries, 2)
	// newest first
	assert.Equal(t, 3000.0, *page.Entries[0].WaterIntake)
	assert.Equal(t, 2500.0, *page.Entries[1].WaterIntake)

	var entry healthdata.Entry
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/health/entries/%d", page.Entries[0].ID), nil, &entry))
	assert.Equal(t, owner, entry.Owner)

	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/health/entries/%d", entry.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/health/entries/%d", entry.ID), nil, nil))

	// entry with no measurements
	assert.Equal(t, http.StatusBadRequest, s.doJSON(ctx, http.MethodPost, "/health/entries", healthdata.Entry{Owner: owner}, nil))
}
