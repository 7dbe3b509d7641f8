package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/projectdesk/internal/client/forms"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/client/services"
)

var errNotLoggedIn = errors.New("not logged in")

// confirm backs the coordinator's Confirmer with a y/N prompt.
func (a *App) confirm(_ context.Context, prompt string) (bool, error) {
	return confirmFn(a.reader, prompt, a.out)
}

// confirmFn is a test seam for Confirm.
var confirmFn = Confirm

// Refresh reloads every collection for the current role and prints them.
func (a *App) Refresh(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Active() {
		return errNotLoggedIn
	}

	snap, err := a.dashboard.Refresh(ctx, s)
	if snap != nil {
		renderSnapshot(a.out, snap)
	}
	if errors.Is(err, services.ErrSuperseded) {
		return nil
	}
	return err
}

// List prints the last loaded dashboard without contacting the backend.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	snap := a.dashboard.Snapshot()
	if snap == nil {
		return a.Refresh(ctx)
	}
	renderSnapshot(a.out, snap)
	return nil
}

// Add prompts for a new project. Students also name their mentor.
func (a *App) Add(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Active() {
		return errNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	synopsis, err := getMultiline(a.reader, "Synopsis (optional)", a.out)
	if err != nil {
		return err
	}

	form := forms.NewProject{Title: title, Synopsis: synopsis}
	if s.Role == models.RoleStudent {
		if form.MentorEmail, err = getSimpleText(a.reader, "Mentor email", a.out); err != nil {
			return err
		}
	}

	snap, err := a.coordinator.Create(ctx, s, form)
	return a.afterMutation("Project submitted.", snap, err)
}

// Edit replaces the title and synopsis of a project. Values left empty keep
// the current ones when the project is on the dashboard.
func (a *App) Edit(ctx context.Context, args []string) error {
	s := a.sessions.Current()
	if !s.Active() {
		return errNotLoggedIn
	}
	id, err := a.projectID(args)
	if err != nil {
		return err
	}

	current, known := a.findProject(id)
	if known && !current.Editable(s.Role) {
		return fmt.Errorf("project #%d is %s and can no longer be edited", id, current.Status)
	}

	title, err := getSimpleText(a.reader, "New title"+hint(known, current.Title), a.out)
	if err != nil {
		return err
	}
	synopsis, err := getMultiline(a.reader, "New synopsis"+hint(known && current.Synopsis != nil, current.SynopsisText()), a.out)
	if err != nil {
		return err
	}
	if known {
		if title == "" {
			title = current.Title
		}
		if synopsis == "" && current.Synopsis != nil {
			synopsis = *current.Synopsis
		}
	}

	snap, err := a.coordinator.Update(ctx, s, id, forms.ProjectEdit{Title: title, Synopsis: synopsis})
	return a.afterMutation("Project updated.", snap, err)
}

// Delete removes a project after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	s := a.sessions.Current()
	if !s.Active() {
		return errNotLoggedIn
	}
	id, err := a.projectID(args)
	if err != nil {
		return err
	}

	if current, known := a.findProject(id); known && !current.Editable(s.Role) {
		return fmt.Errorf("project #%d is %s and can no longer be deleted", id, current.Status)
	}

	snap, err := a.coordinator.Remove(ctx, s, id)
	return a.afterMutation("Project deleted.", snap, err)
}

// Decide approves or rejects a pending project. Teachers only.
func (a *App) Decide(ctx context.Context, action models.Action, args []string) error {
	s := a.sessions.Current()
	if !s.Active() {
		return errNotLoggedIn
	}
	if s.Role != models.RoleTeacher {
		return fmt.Errorf("only teachers can %s projects", action)
	}
	id, err := a.projectID(args)
	if err != nil {
		return err
	}

	snap, err := a.coordinator.Decide(ctx, s, id, action)
	return a.afterMutation(fmt.Sprintf("Project #%d: %s done.", id, action), snap, err)
}

// Check runs an originality check for a candidate idea.
func (a *App) Check(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Active() {
		return errNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	synopsis, err := getMultiline(a.reader, "Synopsis (optional)", a.out)
	if err != nil {
		return err
	}

	report, err := a.coordinator.CheckOriginality(ctx, s, forms.OriginalityCheck{Title: title, Synopsis: synopsis})
	if err != nil {
		return err
	}
	renderReport(a.out, report)
	return nil
}

// afterMutation prints the outcome of a mutation and the refreshed dashboard.
// A refresh failure after a successful mutation is still reported.
func (a *App) afterMutation(done string, snap *services.Snapshot, err error) error {
	if err != nil && !mutationApplied(err) {
		return err
	}
	fmt.Fprintln(a.out, done)
	if snap != nil {
		renderSnapshot(a.out, snap)
	}
	return err
}

// mutationApplied reports whether err came from the refresh that follows a
// successful mutation rather than from the mutation itself.
func mutationApplied(err error) bool {
	var rerr *services.RefreshError
	return errors.As(err, &rerr)
}

func (a *App) projectID(args []string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = getSimpleText(a.reader, "Project ID", a.out); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return id, nil
}

func (a *App) findProject(id int64) (models.Project, bool) {
	snap := a.dashboard.Snapshot()
	if snap == nil {
		return models.Project{}, false
	}
	for _, list := range [][]models.Project{snap.Mine, snap.Pending, snap.Mentored, snap.Approved} {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	return models.Project{}, false
}

func hint(show bool, v string) string {
	if !show {
		return ""
	}
	return fmt.Sprintf(" [%s]", v)
}

// getMultiline is a test seam for GetMultiline.
var getMultiline = GetMultiline
