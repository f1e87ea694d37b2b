package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samarthbanodia/yatrafy/internal/model"
	"github.com/samarthbanodia/yatrafy/internal/repository"
)

func eventCounts(t *testing.T, mem *repository.MemoryStore) map[model.EventType]int {
	t.Helper()
	counts, err := mem.Counts(context.Background())
	require.NoError(t, err)
	return counts
}

func TestPlanTrip_FullPipeline(t *testing.T) {
	mem := repository.NewMemoryStore()
	p := newTestPlanner(mem)
	ctx := context.Background()

	result, err := p.PlanTrip(ctx, "Plan a trip to Goa next month for 2 people", "user_1")
	require.NoError(t, err)
	require.NotNil(t, result.Trip)

	trip := result.Trip
	assert.Equal(t, "Goa", trip.Destination)
	assert.Equal(t, model.BandMidRange, trip.BudgetBand)
	assert.Equal(t, 2, trip.TravelersCount)
	assert.Equal(t, model.StatusOptionsShown, trip.Status)
	assert.True(t, trip.StartDate.Equal(time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)))

	// Three future flights match a mid-April start, three mid-range hotels.
	require.Len(t, result.Options, 3)
	assert.Equal(t, result.Options, trip.CandidateOptions)
	assert.Contains(t, result.Reply, "Goa")

	// Trip persisted as shown.
	stored, ok, err := mem.Get(ctx, trip.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StatusOptionsShown, stored.Status)
	assert.Len(t, stored.CandidateOptions, 3)

	counts := eventCounts(t, mem)
	assert.Equal(t, 1, counts[model.EventSessionStarted])
	assert.Equal(t, 1, counts[model.EventTripCreated])
	assert.Equal(t, 1, counts[model.EventOptionsViewed])

	// Transcript: user turn then assistant turn carrying the options.
	history, err := p.History(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.RoleUser, history[0].Role)
	assert.Equal(t, model.RoleAssistant, history[1].Role)
	assert.Len(t, history[1].TripOptions, 3)
}

func TestPlanTrip_OptionsRankedBestFirst(t *testing.T) {
	mem := repository.NewMemoryStore()
	p := newTestPlanner(mem)

	result, err := p.PlanTrip(context.Background(), "trip to Goa next month", "user_1")
	require.NoError(t, err)
	require.NotEmpty(t, result.Options)
	for i := 1; i < len(result.Options); i++ {
		prev := Score(result.Options[i-1], result.Trip)
		cur := Score(result.Options[i], result.Trip)
		assert.GreaterOrEqual(t, prev, cur, "options out of score order at %d", i)
	}
}

func TestPlanTrip_SessionStartedOnce(t *testing.T) {
	mem := repository.NewMemoryStore()
	p := newTestPlanner(mem)
	ctx := context.Background()

	_, err := p.PlanTrip(ctx, "trip to Goa", "user_1")
	require.NoError(t, err)
	_, err = p.PlanTrip(ctx, "cheap trip to Kerala", "user_1")
	require.NoError(t, err)
	_, err = p.PlanTrip(ctx, "trip to Goa", "user_2")
	require.NoError(t, err)

	counts := eventCounts(t, mem)
	assert.Equal(t, 2, counts[model.EventSessionStarted])
	assert.Equal(t, 3, counts[model.EventTripCreated])

	n, err := mem.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPlanTrip_UnknownDestination(t *testing.T) {
	mem := repository.NewMemoryStore()
	p := newTestPlanner(mem)
	ctx := context.Background()

	result, err := p.PlanTrip(ctx, "somewhere warm with a beach", "user_1")
	require.NoError(t, err)
	assert.Nil(t, result.Trip)
	assert.Empty(t, result.Options)
	assert.Contains(t, result.Reply, "Goa")

	// No trip events, but the exchange still lands in the transcript.
	counts := eventCounts(t, mem)
	assert.Equal(t, 0, counts[model.EventTripCreated])
	assert.Equal(t, 1, counts[model.EventSessionStarted])

	history, err := p.History(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, result.Reply, history[1].Content)
}

func TestPlanTrip_NoInventoryStillAdvancesTrip(t *testing.T) {
	mem := repository.NewMemoryStore()
	p := newTestPlanner(mem)
	ctx := context.Background()

	// Kerala has no premium hotels in the stub catalog.
	result, err := p.PlanTrip(ctx, "luxury trip to Kerala", "user_1")
	require.NoError(t, err)
	require.NotNil(t, result.Trip)
	assert.Empty(t, result.Options)
	assert.Equal(t, model.StatusOptionsShown, result.Trip.Status)
	assert.Contains(t, result.Reply, "couldn't find")

	stored, ok, err := mem.Get(ctx, result.Trip.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StatusOptionsShown, stored.Status)
	assert.Empty(t, stored.CandidateOptions)

	counts := eventCounts(t, mem)
	assert.Equal(t, 1, counts[model.EventTripCreated])
	assert.Equal(t, 1, counts[model.EventOptionsViewed])
}

func TestHistory_UnknownUser(t *testing.T) {
	p := newTestPlanner(repository.NewMemoryStore())
	history, err := p.History(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, history)
}
