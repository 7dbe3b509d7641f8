package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/forms"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
)

// ErrNotConfirmed is returned when the user declines a confirmation prompt.
var ErrNotConfirmed = errors.New("not confirmed")

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Coordinator performs project mutations. A successful mutation is always
// followed by exactly one full refresh through the dashboard; local state is
// never patched. A rejected credential tears the session down and leaves the
// dashboard as it was.
type Coordinator struct {
	client    client.Client
	teardown  SessionTeardown
	dashboard *Dashboard
	confirmer Confirmer
	logger    logging.Logger
}

func NewCoordinator(c client.Client, teardown SessionTeardown, dashboard *Dashboard, confirmer Confirmer, logger logging.Logger) *Coordinator {
	return &Coordinator{client: c, teardown: teardown, dashboard: dashboard, confirmer: confirmer, logger: logger}
}

// Create submits a new project. Students must name a mentor; teachers never
// send one.
func (c *Coordinator) Create(ctx context.Context, sess models.Session, form forms.NewProject) (*Snapshot, error) {
	if err := c.requireSession(sess); err != nil {
		return nil, err
	}
	form.Role = sess.Role
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	p, err := c.client.CreateProject(ctx, sess.Credential, form.Input())
	if err != nil {
		return nil, c.fail(ctx, "create project", err)
	}
	c.logger.Info(ctx, "project created", "id", p.ID, "status", p.Status)
	return c.refresh(ctx, sess)
}

// Update replaces the title and synopsis of project id.
func (c *Coordinator) Update(ctx context.Context, sess models.Session, id int64, form forms.ProjectEdit) (*Snapshot, error) {
	if err := c.requireSession(sess); err != nil {
		return nil, err
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	if _, err := c.client.UpdateProject(ctx, sess.Credential, id, form.Input()); err != nil {
		return nil, c.fail(ctx, "update project", err)
	}
	c.logger.Info(ctx, "project updated", "id", id)
	return c.refresh(ctx, sess)
}

// Remove deletes project id after the user confirms. Declining returns
// ErrNotConfirmed and nothing is sent.
func (c *Coordinator) Remove(ctx context.Context, sess models.Session, id int64) (*Snapshot, error) {
	if err := c.requireSession(sess); err != nil {
		return nil, err
	}
	if err := c.confirm(ctx, fmt.Sprintf("Delete project #%d?", id)); err != nil {
		return nil, err
	}

	if err := c.client.DeleteProject(ctx, sess.Credential, id); err != nil {
		return nil, c.fail(ctx, "delete project", err)
	}
	c.logger.Info(ctx, "project deleted", "id", id)
	return c.refresh(ctx, sess)
}

// Decide approves or rejects project id after the user confirms. The
// transition itself is not checked locally.
func (c *Coordinator) Decide(ctx context.Context, sess models.Session, id int64, action models.Action) (*Snapshot, error) {
	if err := c.requireSession(sess); err != nil {
		return nil, err
	}
	if _, err := models.ParseAction(string(action)); err != nil {
		return nil, err
	}
	if err := c.confirm(ctx, fmt.Sprintf("%s project #%d?", verb(action), id)); err != nil {
		return nil, err
	}

	p, err := c.client.Decide(ctx, sess.Credential, id, action)
	if err != nil {
		return nil, c.fail(ctx, string(action)+" project", err)
	}
	c.logger.Info(ctx, "project decided", "id", id, "action", action, "status", p.Status)
	return c.refresh(ctx, sess)
}

// CheckOriginality asks the backend to compare a candidate idea with existing
// approved projects. It mutates nothing and does not refresh.
func (c *Coordinator) CheckOriginality(ctx context.Context, sess models.Session, form forms.OriginalityCheck) (*models.OriginalityReport, error) {
	if err := c.requireSession(sess); err != nil {
		return nil, err
	}
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	report, err := c.client.CheckOriginality(ctx, sess.Credential, form.Title, form.Synopsis)
	if err != nil {
		return nil, c.fail(ctx, "check originality", err)
	}
	return report, nil
}

func (c *Coordinator) requireSession(sess models.Session) error {
	if !sess.Active() {
		return client.ErrUnauthorized
	}
	return nil
}

func (c *Coordinator) confirm(ctx context.Context, prompt string) error {
	ok, err := c.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}

func (c *Coordinator) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		c.logger.Warn(ctx, "credential rejected", "op", op)
		if cerr := c.teardown.Clear(ctx); cerr != nil {
			c.logger.Error(ctx, "failed to clear session", "error", cerr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// RefreshError reports that a mutation was accepted by the backend but the
// refresh that followed it failed.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "saved, but refresh failed: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// refresh runs the single post-mutation refresh. A superseded refresh is not
// an error for the mutation.
func (c *Coordinator) refresh(ctx context.Context, sess models.Session) (*Snapshot, error) {
	snap, err := c.dashboard.Refresh(ctx, sess)
	if errors.Is(err, ErrSuperseded) {
		return nil, nil
	}
	if err != nil {
		return snap, &RefreshError{Err: err}
	}
	return snap, nil
}

func verb(a models.Action) string {
	if a == models.ActionApprove {
		return "Approve"
	}
	return "Reject"
}
