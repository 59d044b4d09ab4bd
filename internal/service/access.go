package service

import (
	"context"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/password"
)

// AccessOutcome classifies what a caller may see of a dashboard.
type AccessOutcome string

const (
	// AccessOwner: caller is the owner; full content plus the
	// sharing/password flags the owner needs to manage the board.
	AccessOwner AccessOutcome = "owner"
	// AccessSharedOpen: shared, no password gate; full content.
	AccessSharedOpen AccessOutcome = "shared_open"
	// AccessPasswordRequired: shared with a gate and no password was
	// submitted; the caller must retry with one.
	AccessPasswordRequired AccessOutcome = "password_required"
	// AccessSharedWithPassword: the submitted password matched.
	AccessSharedWithPassword AccessOutcome = "shared_with_password"
	// AccessDenied: the dashboard is private and the caller is not
	// its owner. Nothing about the record is revealed.
	AccessDenied AccessOutcome = "denied"
	// AccessWrongPassword: the submitted password did not match. The
	// caller learns nothing beyond that.
	AccessWrongPassword AccessOutcome = "wrong_password"
)

// revealsContent marks the qualifying access events: exactly these
// outcomes carry content and count a view.
func (o AccessOutcome) revealsContent() bool {
	switch o {
	case AccessOwner, AccessSharedOpen, AccessSharedWithPassword:
		return true
	}
	return false
}

type AccessResult struct {
	Outcome        AccessOutcome
	Dashboard      *DashboardContent
	OwnerID        string
	Shared         bool
	HasPassword    bool
	PasswordNeeded bool
}

// ResolveAccess decides what callerID (empty for anonymous) may see of
// a dashboard and applies the view-accounting side effect. submitted
// is nil when no password accompanied the request; a submitted empty
// string is a real (failing) attempt, not an absent one.
//
// The branches are evaluated strictly in order: missing record, owner,
// private, open share, gate without attempt, gate with attempt.
// Ownership is judged only against the verified token subject; a
// client-supplied owner id is never consulted.
func (s *DashboardService) ResolveAccess(ctx context.Context, dashboardID, callerID string, submitted *string) (*AccessResult, error) {
	dashboard, err := s.dashboards.GetByID(ctx, dashboardID)
	if err != nil {
		return nil, err
	}

	result := &AccessResult{Shared: dashboard.Shared}
	switch {
	case callerID != "" && callerID == dashboard.OwnerID:
		result.Outcome = AccessOwner
		result.OwnerID = dashboard.OwnerID
		result.HasPassword = dashboard.HasPassword()
		result.Dashboard = contentOf(dashboard)

	case !dashboard.Shared:
		// Private board, foreign caller: reveal only that it is not
		// shared. The shared flag alone cannot distinguish this
		// response from any other private board.
		result.Outcome = AccessDenied

	case !dashboard.HasPassword():
		result.Outcome = AccessSharedOpen
		result.OwnerID = dashboard.OwnerID
		result.Dashboard = contentOf(dashboard)

	case submitted == nil:
		result.Outcome = AccessPasswordRequired
		result.PasswordNeeded = true

	case password.Compare(*dashboard.PasswordHash, *submitted) != nil:
		result.Outcome = AccessWrongPassword

	default:
		result.Outcome = AccessSharedWithPassword
		result.OwnerID = dashboard.OwnerID
		result.Dashboard = contentOf(dashboard)
	}

	if result.Outcome.revealsContent() {
		// Committed before the response is written; an aborted
		// request may still have counted (at-least-once).
		if err := s.dashboards.IncrementViews(ctx, dashboard.ID); err != nil {
			if appErr.IsNotFound(err) {
				return nil, appErr.ErrNotFound
			}
			return nil, err
		}
	}
	return result, nil
}
