package repo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/gridboard/internal/model"
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/timeutil"
	"github.com/gridwatch/gridboard/internal/repo"
	"github.com/gridwatch/gridboard/test/testutil"
)

func newDashboard(t *testing.T, ownerID, name string) *model.Dashboard {
	t.Helper()
	now := timeutil.NowUnix()
	return &model.Dashboard{
		ID:      testutil.RandID(t),
		OwnerID: ownerID,
		Name:    name,
		Layout:  "[]",
		Items:   "{}",
		NextID:  1,
		Ctime:   now,
		Mtime:   now,
	}
}

func TestDashboardRepoCRUDAndOwnership(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	dashboards := repo.NewDashboardRepo(db)
	owner := testutil.RandID(t)
	dashboard := newDashboard(t, owner, "board-"+testutil.RandID(t))
	require.NoError(t, dashboards.Create(context.Background(), dashboard))

	fetched, err := dashboards.GetByID(context.Background(), dashboard.ID)
	require.NoError(t, err)
	require.Equal(t, dashboard.Name, fetched.Name)
	require.Nil(t, fetched.PasswordHash)

	_, err = dashboards.GetOwned(context.Background(), dashboard.ID, "someone-else")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, dashboards.UpdateContent(context.Background(), dashboard.ID, owner,
		`[{"i":"1"}]`, `{"1":{}}`, 2, timeutil.NowUnix()))
	fetched, err = dashboards.GetOwned(context.Background(), dashboard.ID, owner)
	require.NoError(t, err)
	require.Equal(t, `[{"i":"1"}]`, fetched.Layout)
	require.Equal(t, 2, fetched.NextID)

	require.ErrorIs(t, dashboards.Delete(context.Background(), dashboard.ID, "someone-else"), appErr.ErrNotFound)
	require.NoError(t, dashboards.Delete(context.Background(), dashboard.ID, owner))
	_, err = dashboards.GetByID(context.Background(), dashboard.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestDashboardRepoNameUniquePerOwner(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	dashboards := repo.NewDashboardRepo(db)
	name := "board-" + testutil.RandID(t)
	ownerA := testutil.RandID(t)
	ownerB := testutil.RandID(t)

	require.NoError(t, dashboards.Create(context.Background(), newDashboard(t, ownerA, name)))
	require.ErrorIs(t, dashboards.Create(context.Background(), newDashboard(t, ownerA, name)), appErr.ErrConflict)
	// Another owner may reuse the name.
	require.NoError(t, dashboards.Create(context.Background(), newDashboard(t, ownerB, name)))
}

func TestDashboardRepoPasswordRoundTrip(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	dashboards := repo.NewDashboardRepo(db)
	owner := testutil.RandID(t)
	dashboard := newDashboard(t, owner, "board-"+testutil.RandID(t))
	require.NoError(t, dashboards.Create(context.Background(), dashboard))

	hash := "$2a$10$" + testutil.RandID(t)
	require.NoError(t, dashboards.UpdatePassword(context.Background(), dashboard.ID, owner, &hash, timeutil.NowUnix()))
	fetched, err := dashboards.GetByID(context.Background(), dashboard.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.PasswordHash)
	require.Equal(t, hash, *fetched.PasswordHash)

	// Clearing stores NULL, not an empty string.
	require.NoError(t, dashboards.UpdatePassword(context.Background(), dashboard.ID, owner, nil, timeutil.NowUnix()))
	fetched, err = dashboards.GetByID(context.Background(), dashboard.ID)
	require.NoError(t, err)
	require.Nil(t, fetched.PasswordHash)
}

func TestDashboardRepoConcurrentViewIncrements(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	dashboards := repo.NewDashboardRepo(db)
	owner := testutil.RandID(t)
	dashboard := newDashboard(t, owner, "board-"+testutil.RandID(t))
	require.NoError(t, dashboards.Create(context.Background(), dashboard))

	const increments = 8
	var wg sync.WaitGroup
	errs := make(chan error, increments)
	for i := 0; i < increments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- dashboards.IncrementViews(context.Background(), dashboard.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	fetched, err := dashboards.GetByID(context.Background(), dashboard.ID)
	require.NoError(t, err)
	require.Equal(t, int64(increments), fetched.Views)

	require.ErrorIs(t, dashboards.IncrementViews(context.Background(), testutil.RandID(t)), appErr.ErrNotFound)
}

func TestDashboardRepoListByOwnerOrdersByCtime(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	dashboards := repo.NewDashboardRepo(db)
	owner := testutil.RandID(t)

	first := newDashboard(t, owner, "first-"+testutil.RandID(t))
	first.Ctime = 100
	second := newDashboard(t, owner, "second-"+testutil.RandID(t))
	second.Ctime = 200
	require.NoError(t, dashboards.Create(context.Background(), second))
	require.NoError(t, dashboards.Create(context.Background(), first))

	items, err := dashboards.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, first.ID, items[0].ID)
	require.Equal(t, second.ID, items[1].ID)
}
