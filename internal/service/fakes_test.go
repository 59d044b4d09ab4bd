package service_test

import (
	"context"
	"sync"

	"github.com/gridwatch/gridboard/internal/model"
	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
)

// In-memory store fakes. IncrementViews mutates under the lock, so the
// fake honors the same atomic read-modify-write contract as the SQL
// implementation.

type fakeDashboardStore struct {
	mu    sync.Mutex
	items map[string]*model.Dashboard
}

func newFakeDashboardStore() *fakeDashboardStore {
	return &fakeDashboardStore{items: make(map[string]*model.Dashboard)}
}

func (s *fakeDashboardStore) put(d *model.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *d
	s.items[d.ID] = &clone
}

func (s *fakeDashboardStore) views(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Views
}

func (s *fakeDashboardStore) Create(ctx context.Context, dashboard *model.Dashboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.OwnerID == dashboard.OwnerID && item.Name == dashboard.Name {
			return appErr.ErrConflict
		}
	}
	clone := *dashboard
	s.items[dashboard.ID] = &clone
	return nil
}

func (s *fakeDashboardStore) GetByID(ctx context.Context, id string) (*model.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *fakeDashboardStore) GetOwned(ctx context.Context, id, ownerID string) (*model.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.OwnerID != ownerID {
		return nil, appErr.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *fakeDashboardStore) GetByOwnerAndName(ctx context.Context, ownerID, name string) (*model.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.OwnerID == ownerID && item.Name == name {
			clone := *item
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *fakeDashboardStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Dashboard, 0)
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *fakeDashboardStore) UpdateContent(ctx context.Context, id, ownerID, layout, items string, nextID int, mtime int64) error {
	return s.updateOwned(id, ownerID, func(d *model.Dashboard) {
		d.Layout = layout
		d.Items = items
		d.NextID = nextID
		d.Mtime = mtime
	})
}

func (s *fakeDashboardStore) UpdateName(ctx context.Context, id, ownerID, name string, mtime int64) error {
	return s.updateOwned(id, ownerID, func(d *model.Dashboard) {
		d.Name = name
		d.Mtime = mtime
	})
}

func (s *fakeDashboardStore) UpdateShared(ctx context.Context, id, ownerID string, shared bool, mtime int64) error {
	return s.updateOwned(id, ownerID, func(d *model.Dashboard) {
		d.Shared = shared
		d.Mtime = mtime
	})
}

func (s *fakeDashboardStore) UpdatePassword(ctx context.Context, id, ownerID string, hash *string, mtime int64) error {
	return s.updateOwned(id, ownerID, func(d *model.Dashboard) {
		d.PasswordHash = hash
		d.Mtime = mtime
	})
}

func (s *fakeDashboardStore) IncrementViews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return appErr.ErrNotFound
	}
	item.Views++
	return nil
}

func (s *fakeDashboardStore) Delete(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.OwnerID != ownerID {
		return appErr.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeDashboardStore) updateOwned(id, ownerID string, apply func(*model.Dashboard)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || item.OwnerID != ownerID {
		return appErr.ErrNotFound
	}
	apply(item)
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	items map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{items: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Username == user.Username || item.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	clone := *user
	s.items[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Username == username {
			clone := *item
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Email == email {
			clone := *item
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string, mtime int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[userID]
	if !ok {
		return appErr.ErrNotFound
	}
	item.PasswordHash = passwordHash
	item.Mtime = mtime
	return nil
}

type fakeResetStore struct {
	mu    sync.Mutex
	items map[string]*model.PasswordReset
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{items: make(map[string]*model.PasswordReset)}
}

func (s *fakeResetStore) Replace(ctx context.Context, reset *model.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *reset
	s.items[reset.Username] = &clone
	return nil
}

func (s *fakeResetStore) Consume(ctx context.Context, username string) (*model.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[username]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	delete(s.items, username)
	return item, nil
}

func (s *fakeResetStore) DeleteExpired(ctx context.Context, cutoff int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for username, item := range s.items {
		if item.ExpireAt < cutoff {
			delete(s.items, username)
			deleted++
		}
	}
	return deleted, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}
