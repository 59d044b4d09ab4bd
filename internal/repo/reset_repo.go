package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/gridwatch/gridboard/internal/model"
	"github.com/gridwatch/gridboard/internal/pkg/dbutil"
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
)

var resetColumns = []string{"id", "username", "token", "expire_at", "ctime"}

type ResetRepo struct {
	db *sql.DB
}

func NewResetRepo(db *sql.DB) *ResetRepo {
	return &ResetRepo{db: db}
}

// Replace deletes any existing reset row for the username before
// inserting the new one, so a user holds at most one live token.
func (r *ResetRepo) Replace(ctx context.Context, reset *model.PasswordReset) error {
	if err := r.deleteByUsername(ctx, reset.Username); err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":        reset.ID,
		"username":  reset.Username,
		"token":     reset.Token,
		"expire_at": reset.ExpireAt,
		"ctime":     reset.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("password_resets", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

// Consume removes and returns the reset row for a username; missing
// row maps to ErrNotFound so the caller can answer 410 Gone.
func (r *ResetRepo) Consume(ctx context.Context, username string) (*model.PasswordReset, error) {
	where := map[string]interface{}{"username": username}
	sqlStr, args, err := builder.BuildSelect("password_resets", where, resetColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var reset model.PasswordReset
	if err := rows.Scan(&reset.ID, &reset.Username, &reset.Token, &reset.ExpireAt, &reset.Ctime); err != nil {
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := r.deleteByUsername(ctx, username); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetRepo) DeleteExpired(ctx context.Context, cutoff int64) (int64, error) {
	sqlStr, args := dbutil.Finalize("DELETE FROM password_resets WHERE expire_at < ?", []interface{}{cutoff})
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ResetRepo) deleteByUsername(ctx context.Context, username string) error {
	where := map[string]interface{}{"username": username}
	sqlStr, args, err := builder.BuildDelete("password_resets", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
