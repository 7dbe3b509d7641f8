package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/client/services"
	"github.com/olekukonko/tablewriter"
)

// maxTitle truncates long titles in tables.
const maxTitle = 48

func renderSnapshot(w io.Writer, snap *services.Snapshot) {
	failed := make(map[services.Collection]bool, len(snap.Failed))
	for _, c := range snap.Failed {
		failed[c] = true
	}

	switch snap.Role {
	case models.RoleStudent:
		renderTable(w, "My projects", snap.Mine, failed[services.CollectionMine], snap.Role)
	case models.RoleTeacher:
		renderTable(w, "Pending review", snap.Pending, failed[services.CollectionPending], snap.Role)
		renderTable(w, "Mentored projects", snap.Mentored, failed[services.CollectionMentored], snap.Role)
	}
	renderTable(w, "Approved projects", snap.Approved, false, "")
}

// renderTable prints one collection. A non-empty role adds an ACTIONS column
// naming what that role may do with each project.
func renderTable(w io.Writer, title string, projects []models.Project, failed bool, role models.Role) {
	fmt.Fprintf(w, "\n== %s (%d) ==\n", title, len(projects))
	if failed {
		fmt.Fprintln(w, "  could not be loaded")
		return
	}
	if len(projects) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}

	header := []string{"ID", "STATUS", "TITLE"}
	if role != "" {
		header = append(header, "ACTIONS")
	}
	table := newTable(w, header)
	for _, p := range projects {
		row := []string{strconv.FormatInt(p.ID, 10), badge(p.Status), truncate(p.Title, maxTitle)}
		if role != "" {
			row = append(row, actions(p, role))
		}
		table.Append(row)
	}
	table.Render()
}

// newTable returns a borderless, left-aligned table in the style of kubectl
// output.
func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

func badge(s models.Status) string {
	return "[" + strings.ToUpper(string(s)) + "]"
}

func actions(p models.Project, role models.Role) string {
	var acts []string
	if role == models.RoleTeacher && !p.Status.Terminal() {
		acts = append(acts, "approve", "reject")
	}
	if p.Editable(role) {
		acts = append(acts, "edit", "delete")
	}
	if len(acts) == 0 {
		return "-"
	}
	return strings.Join(acts, ",")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderReport(w io.Writer, r *models.OriginalityReport) {
	verdict := "Looks original"
	if !r.IsOriginal {
		verdict = "Similar projects found"
	}
	fmt.Fprintf(w, "%s. %s\n", verdict, r.Message)

	if len(r.SimilarProjects) == 0 {
		return
	}
	table := newTable(w, []string{"ID", "SIMILARITY", "TITLE"})
	for _, p := range r.SimilarProjects {
		table.Append([]string{
			strconv.FormatInt(p.ID, 10),
			fmt.Sprintf("%d%% (%s)", p.Percent(), p.Band()),
			truncate(p.Title, maxTitle),
		})
	}
	table.Render()
}

func renderWeather(w io.Writer, wt *models.Weather) {
	fmt.Fprintf(w, "%s: %d°C, %s\n", wt.City, wt.RoundedTemp(), wt.Description)
}

// describeError turns a command error into a one-line message for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, services.ErrNotConfirmed):
		return "Cancelled."
	case errors.Is(err, errNotLoggedIn):
		return "You are not logged in. Use 'login' first."
	case errors.Is(err, client.ErrInvalidCredentials):
		return "Incorrect email or password."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	default:
		return "Error: " + err.Error()
	}
}

// report prints err, if any, as a transient message.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	a.logger.Debug(context.Background(), "command failed", "error", err)
	fmt.Fprintln(a.out, describeError(err))
}
