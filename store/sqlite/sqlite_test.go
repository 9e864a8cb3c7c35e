package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidLHW/robot-salary-calculator/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

const testDocument = `{"standardDay":{"start":"07:00:00","end":"23:00:00","value":20}}`

func TestSavePlan_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SavePlan(ctx, sqlite.RatePlanRecord{
		ID:           "plan-1",
		Name:         "standard",
		DocumentJSON: testDocument,
	})
	require.NoError(t, err)

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "standard", got.Name)
	assert.Equal(t, testDocument, got.DocumentJSON)
	assert.Equal(t, 1, got.Version)
	assert.False(t, got.CreatedAt.IsZero())

	byName, err := store.GetPlanByName(ctx, "standard")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "plan-1", byName.ID)
}

func TestSavePlan_UpdateBumpsVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plan := sqlite.RatePlanRecord{ID: "plan-1", Name: "standard", DocumentJSON: testDocument}
	require.NoError(t, store.SavePlan(ctx, plan))

	plan.DocumentJSON = `{"standardDay":{"start":"06:00:00","end":"22:00:00","value":21}}`
	require.NoError(t, store.SavePlan(ctx, plan))

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Version)
	assert.Contains(t, got.DocumentJSON, "06:00:00")
}

func TestSavePlan_DuplicateName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, sqlite.RatePlanRecord{
		ID: "plan-1", Name: "standard", DocumentJSON: testDocument,
	}))
	err := store.SavePlan(ctx, sqlite.RatePlanRecord{
		ID: "plan-2", Name: "standard", DocumentJSON: testDocument,
	})
	assert.ErrorIs(t, err, sqlite.ErrDuplicatePlanName)
}

func TestGetPlan_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPlan(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeletePlan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, sqlite.RatePlanRecord{
		ID: "plan-1", Name: "standard", DocumentJSON: testDocument,
	}))

	deleted, err := store.DeletePlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeletePlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListPlans_OrderedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"weekend", "apprentice", "standard"} {
		require.NoError(t, store.SavePlan(ctx, sqlite.RatePlanRecord{
			ID: "plan-" + name, Name: name, DocumentJSON: testDocument,
		}))
	}

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "apprentice", plans[0].Name)
	assert.Equal(t, "standard", plans[1].Name)
	assert.Equal(t, "weekend", plans[2].Name)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePlan(ctx, sqlite.RatePlanRecord{
		ID: "plan-1", Name: "standard", DocumentJSON: testDocument,
	}))
	require.NoError(t, store.Reset(ctx))

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
