package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/gridwatch/gridboard/internal/model"
	"github.com/gridwatch/gridboard/internal/pkg/dbutil"
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
)

var dashboardColumns = []string{
	"id", "owner_id", "name", "layout", "items", "next_id",
	"password_hash", "shared", "views", "ctime", "mtime",
}

type DashboardRepo struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{db: db}
}

func (r *DashboardRepo) Create(ctx context.Context, dashboard *model.Dashboard) error {
	data := map[string]interface{}{
		"id":            dashboard.ID,
		"owner_id":      dashboard.OwnerID,
		"name":          dashboard.Name,
		"layout":        dashboard.Layout,
		"items":         dashboard.Items,
		"next_id":       dashboard.NextID,
		"password_hash": passwordArg(dashboard.PasswordHash),
		"shared":        dashboard.Shared,
		"views":         dashboard.Views,
		"ctime":         dashboard.Ctime,
		"mtime":         dashboard.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("dashboards", []map[string]interface{}{data})
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

func (r *DashboardRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Dashboard, error) {
	sqlStr, args, err := builder.BuildSelect("dashboards", where, dashboardColumns)
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
	return scanDashboard(rows)
}

// GetByID fetches a dashboard regardless of caller, password digest
// included. The digest stays inside the service layer.
func (r *DashboardRepo) GetByID(ctx context.Context, id string) (*model.Dashboard, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id})
}

func (r *DashboardRepo) GetOwned(ctx context.Context, id, ownerID string) (*model.Dashboard, error) {
	return r.getOne(ctx, map[string]interface{}{"id": id, "owner_id": ownerID})
}

func (r *DashboardRepo) GetByOwnerAndName(ctx context.Context, ownerID, name string) (*model.Dashboard, error) {
	return r.getOne(ctx, map[string]interface{}{"owner_id": ownerID, "name": name})
}

func (r *DashboardRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Dashboard, error) {
	where := map[string]interface{}{
		"owner_id": ownerID,
		"_orderby": "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("dashboards", where, dashboardColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := make([]model.Dashboard, 0)
	for rows.Next() {
		dashboard, err := scanDashboard(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *dashboard)
	}
	return items, rows.Err()
}

func (r *DashboardRepo) UpdateContent(ctx context.Context, id, ownerID, layout, items string, nextID int, mtime int64) error {
	return r.updateOwned(ctx, id, ownerID, map[string]interface{}{
		"layout":  layout,
		"items":   items,
		"next_id": nextID,
		"mtime":   mtime,
	})
}

func (r *DashboardRepo) UpdateName(ctx context.Context, id, ownerID, name string, mtime int64) error {
	return r.updateOwned(ctx, id, ownerID, map[string]interface{}{
		"name":  name,
		"mtime": mtime,
	})
}

func (r *DashboardRepo) UpdateShared(ctx context.Context, id, ownerID string, shared bool, mtime int64) error {
	return r.updateOwned(ctx, id, ownerID, map[string]interface{}{
		"shared": shared,
		"mtime":  mtime,
	})
}

// UpdatePassword stores a fresh digest, or clears the gate when hash
// is nil (SQL NULL, never the empty string).
func (r *DashboardRepo) UpdatePassword(ctx context.Context, id, ownerID string, hash *string, mtime int64) error {
	return r.updateOwned(ctx, id, ownerID, map[string]interface{}{
		"password_hash": passwordArg(hash),
		"mtime":         mtime,
	})
}

// IncrementViews bumps the view counter in a single UPDATE so that
// concurrent qualifying reads never lose an increment.
func (r *DashboardRepo) IncrementViews(ctx context.Context, id string) error {
	sqlStr, args := dbutil.Finalize("UPDATE dashboards SET views = views + 1 WHERE id = ?", []interface{}{id})
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *DashboardRepo) Delete(ctx context.Context, id, ownerID string) error {
	where := map[string]interface{}{"id": id, "owner_id": ownerID}
	sqlStr, args, err := builder.BuildDelete("dashboards", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *DashboardRepo) updateOwned(ctx context.Context, id, ownerID string, update map[string]interface{}) error {
	where := map[string]interface{}{"id": id, "owner_id": ownerID}
	sqlStr, args, err := builder.BuildUpdate("dashboards", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDashboard(rows rowScanner) (*model.Dashboard, error) {
	var dashboard model.Dashboard
	var hash sql.NullString
	if err := rows.Scan(
		&dashboard.ID, &dashboard.OwnerID, &dashboard.Name,
		&dashboard.Layout, &dashboard.Items, &dashboard.NextID,
		&hash, &dashboard.Shared, &dashboard.Views,
		&dashboard.Ctime, &dashboard.Mtime,
	); err != nil {
		return nil, err
	}
	if hash.Valid {
		dashboard.PasswordHash = &hash.String
	}
	return &dashboard, nil
}

func passwordArg(hash *string) interface{} {
	if hash == nil {
		return nil
	}
	return *hash
}
