package service

import (
	"context"
	"encoding/json"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/password"
	"github.com/gridwatch/gridboard/internal/pkg/timeutil"

	"github.com/gridwatch/gridboard/internal/model"
)

type DashboardService struct {
	dashboards DashboardStore
}

func NewDashboardService(dashboards DashboardStore) *DashboardService {
	return &DashboardService{dashboards: dashboards}
}

type DashboardSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Views int64  `json:"views"`
}

// DashboardContent is the portion of a record revealed once access is
// granted. It never carries the password digest or the view counter.
type DashboardContent struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Layout json.RawMessage `json:"layout"`
	Items  json.RawMessage `json:"items"`
	NextID int             `json:"nextId"`
}

func contentOf(d *model.Dashboard) *DashboardContent {
	return &DashboardContent{
		ID:     d.ID,
		Name:   d.Name,
		Layout: json.RawMessage(d.Layout),
		Items:  json.RawMessage(d.Items),
		NextID: d.NextID,
	}
}

func (s *DashboardService) Create(ctx context.Context, ownerID, name string) (*model.Dashboard, error) {
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.dashboards.GetByOwnerAndName(ctx, ownerID, name); err == nil {
		return nil, appErr.ErrConflict
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	now := timeutil.NowUnix()
	dashboard := &model.Dashboard{
		ID:      newID(),
		OwnerID: ownerID,
		Name:    name,
		Layout:  "[]",
		Items:   "{}",
		NextID:  1,
		Ctime:   now,
		Mtime:   now,
	}
	if err := s.dashboards.Create(ctx, dashboard); err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (s *DashboardService) List(ctx context.Context, ownerID string) ([]DashboardSummary, error) {
	items, err := s.dashboards.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]DashboardSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, DashboardSummary{
			ID:    item.ID,
			Name:  item.Name,
			Views: item.Views,
		})
	}
	return summaries, nil
}

func (s *DashboardService) Get(ctx context.Context, ownerID, id string) (*DashboardContent, error) {
	dashboard, err := s.dashboards.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return contentOf(dashboard), nil
}

func (s *DashboardService) Save(ctx context.Context, ownerID, id string, layout, items json.RawMessage, nextID int) error {
	layoutStr := "[]"
	if len(layout) > 0 {
		layoutStr = string(layout)
	}
	itemsStr := "{}"
	if len(items) > 0 {
		itemsStr = string(items)
	}
	if nextID < 1 {
		nextID = 1
	}
	return s.dashboards.UpdateContent(ctx, id, ownerID, layoutStr, itemsStr, nextID, timeutil.NowUnix())
}

func (s *DashboardService) Rename(ctx context.Context, ownerID, id, name string) error {
	if name == "" {
		return appErr.ErrInvalid
	}
	if existing, err := s.dashboards.GetByOwnerAndName(ctx, ownerID, name); err == nil {
		if existing.ID == id {
			return nil
		}
		return appErr.ErrConflict
	} else if !appErr.IsNotFound(err) {
		return err
	}
	return s.dashboards.UpdateName(ctx, id, ownerID, name, timeutil.NowUnix())
}

func (s *DashboardService) Clone(ctx context.Context, ownerID, id, name string) (*model.Dashboard, error) {
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.dashboards.GetByOwnerAndName(ctx, ownerID, name); err == nil {
		return nil, appErr.ErrConflict
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	source, err := s.dashboards.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	clone := &model.Dashboard{
		ID:      newID(),
		OwnerID: ownerID,
		Name:    name,
		Layout:  source.Layout,
		Items:   source.Items,
		NextID:  source.NextID,
		Ctime:   now,
		Mtime:   now,
	}
	if err := s.dashboards.Create(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

func (s *DashboardService) Delete(ctx context.Context, ownerID, id string) error {
	return s.dashboards.Delete(ctx, id, ownerID)
}

// ToggleShare flips the shared flag and returns the new value.
// Calling it twice restores the original state.
func (s *DashboardService) ToggleShare(ctx context.Context, ownerID, id string) (bool, error) {
	dashboard, err := s.dashboards.GetOwned(ctx, id, ownerID)
	if err != nil {
		return false, err
	}
	shared := !dashboard.Shared
	if err := s.dashboards.UpdateShared(ctx, id, ownerID, shared, timeutil.NowUnix()); err != nil {
		return false, err
	}
	return shared, nil
}

// SetPassword digests and stores a new dashboard password. An empty
// plaintext clears the gate entirely (NULL digest), re-opening a
// shared dashboard to password-free viewing.
func (s *DashboardService) SetPassword(ctx context.Context, ownerID, id, plain string) error {
	if _, err := s.dashboards.GetOwned(ctx, id, ownerID); err != nil {
		return err
	}
	if plain == "" {
		return s.dashboards.UpdatePassword(ctx, id, ownerID, nil, timeutil.NowUnix())
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	return s.dashboards.UpdatePassword(ctx, id, ownerID, &hash, timeutil.NowUnix())
}
