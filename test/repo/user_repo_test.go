package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/gridboard/internal/model"
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/timeutil"
	"github.com/gridwatch/gridboard/internal/repo"
	"github.com/gridwatch/gridboard/test/testutil"
)

func newUser(t *testing.T) *model.User {
	t.Helper()
	id := testutil.RandID(t)
	now := timeutil.NowUnix()
	return &model.User{
		ID:           id,
		Username:     "user-" + id,
		Email:        "user-" + id + "@example.com",
		PasswordHash: "$2a$10$" + id,
		Ctime:        now,
		Mtime:        now,
	}
}

func TestUserRepoCreateAndLookups(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := newUser(t)
	require.NoError(t, users.Create(context.Background(), user))

	byID, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Username, byID.Username)

	byName, err := users.GetByUsername(context.Background(), user.Username)
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.ID)

	byEmail, err := users.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	_, err = users.GetByUsername(context.Background(), "missing-"+testutil.RandID(t))
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoUniqueUsernameAndEmail(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := newUser(t)
	require.NoError(t, users.Create(context.Background(), user))

	dup := newUser(t)
	dup.Username = user.Username
	require.ErrorIs(t, users.Create(context.Background(), dup), appErr.ErrConflict)

	dup = newUser(t)
	dup.Email = user.Email
	require.ErrorIs(t, users.Create(context.Background(), dup), appErr.ErrConflict)
}

func TestUserRepoUpdatePassword(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := newUser(t)
	require.NoError(t, users.Create(context.Background(), user))

	newHash := "$2a$10$" + testutil.RandID(t)
	require.NoError(t, users.UpdatePassword(context.Background(), user.ID, newHash, timeutil.NowUnix()))

	fetched, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, newHash, fetched.PasswordHash)

	require.ErrorIs(t, users.UpdatePassword(context.Background(), testutil.RandID(t), newHash, timeutil.NowUnix()), appErr.ErrNotFound)
}
