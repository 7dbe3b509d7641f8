// Package services contains application services for the projectdesk client:
// role-scoped data fetching, dashboard state, mutations and authentication.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
)

// Collection names one server-side project listing.
type Collection string

const (
	CollectionApproved Collection = "approved"
	CollectionMine     Collection = "mine"
	CollectionMentored Collection = "mentored"
	CollectionPending  Collection = "pending"
)

// Plan returns the ordered batch of collections a refresh fetches for role.
// The approved list always comes first; an unknown role gets only that.
func Plan(role models.Role) []Collection {
	switch role {
	case models.RoleStudent:
		return []Collection{CollectionApproved, CollectionMine}
	case models.RoleTeacher:
		return []Collection{CollectionApproved, CollectionMentored, CollectionPending}
	default:
		return []Collection{CollectionApproved}
	}
}

// Snapshot is the result of one refresh. The collections are independent
// server views; a project may appear in several or none.
type Snapshot struct {
	Role     models.Role
	Approved []models.Project
	Mine     []models.Project
	Mentored []models.Project
	Pending  []models.Project

	// Failed lists role collections whose fetch failed and were left empty.
	Failed []Collection
}

func (s *Snapshot) put(c Collection, projects []models.Project) {
	switch c {
	case CollectionApproved:
		s.Approved = projects
	case CollectionMine:
		s.Mine = projects
	case CollectionMentored:
		s.Mentored = projects
	case CollectionPending:
		s.Pending = projects
	}
}

// SessionTeardown is called when the backend rejects the credential.
type SessionTeardown interface {
	Clear(ctx context.Context) error
}

// Refresher produces a fresh snapshot for a session.
type Refresher interface {
	Refresh(ctx context.Context, sess models.Session) (*Snapshot, error)
}

// Fetcher runs the role-scoped refresh batch against the API client.
type Fetcher struct {
	client   client.Client
	teardown SessionTeardown
	logger   logging.Logger
}

func NewFetcher(c client.Client, teardown SessionTeardown, logger logging.Logger) *Fetcher {
	return &Fetcher{client: c, teardown: teardown, logger: logger}
}

func (f *Fetcher) list(ctx context.Context, c Collection, token string) ([]models.Project, error) {
	switch c {
	case CollectionApproved:
		return f.client.ListApproved(ctx, token)
	case CollectionMine:
		return f.client.ListMine(ctx, token)
	case CollectionMentored:
		return f.client.ListMentored(ctx, token)
	case CollectionPending:
		return f.client.ListPending(ctx, token)
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}
}

// Refresh fetches every collection of Plan(sess.Role), sequentially.
//
// If the approved list fails the whole refresh fails and no role call is
// made. A failing role call leaves its collection empty; the partial snapshot
// is returned together with the joined errors. ErrUnauthorized from any call
// stops the batch, tears the session down and returns no snapshot.
func (f *Fetcher) Refresh(ctx context.Context, sess models.Session) (*Snapshot, error) {
	if !sess.Active() {
		return nil, client.ErrUnauthorized
	}

	plan := Plan(sess.Role)
	snap := &Snapshot{Role: sess.Role}

	var errs []error
	for i, c := range plan {
		projects, err := f.list(ctx, c, sess.Credential)
		if errors.Is(err, client.ErrUnauthorized) {
			f.logger.Warn(ctx, "credential rejected during refresh", "collection", c)
			f.tearDown(ctx)
			return nil, fmt.Errorf("fetch %s projects: %w", c, err)
		}
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("fetch %s projects: %w", c, err)
			}
			f.logger.Warn(ctx, "collection fetch failed", "collection", c, "error", err)
			errs = append(errs, fmt.Errorf("fetch %s projects: %w", c, err))
			snap.Failed = append(snap.Failed, c)
			projects = []models.Project{}
		}
		snap.put(c, projects)
	}

	f.logger.Debug(ctx, "refresh finished", "role", sess.Role, "failed", len(snap.Failed))
	return snap, errors.Join(errs...)
}

func (f *Fetcher) tearDown(ctx context.Context) {
	if err := f.teardown.Clear(ctx); err != nil {
		f.logger.Error(ctx, "failed to clear session", "error", err)
	}
}
