package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/client/views"
	"github.com/dustin/go-humanize"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dateOf(ts *models.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format(dateLayout)
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func renderUsers(w io.Writer, v *views.UsersView) {
	if len(v.Rows) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tFULL NAME\tROLE\tACTIVE\tCREATED")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Username, r.Email, r.FullName, r.Role, yesNo(r.IsActive), dateOf(&r.CreatedAt))
	}
	tw.Flush()

	footer := fmt.Sprintf("Page %d", v.Page+1)
	if v.Search != "" {
		footer += fmt.Sprintf(", search %q", v.Search)
	}
	fmt.Fprintln(w, footer)
}

func renderTasks(w io.Writer, v *views.TasksView) {
	if len(v.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tASSIGNEE\tDUE")
	for _, t := range v.Tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority, v.AssigneeName(t), dateOf(t.DueDate))
	}
	tw.Flush()

	parts := []string{fmt.Sprintf("Page %d", v.Page+1)}
	if v.Tab == views.TabMine {
		parts = append(parts, "my tasks")
	}
	if v.Filter.Status != "" {
		parts = append(parts, "status="+string(v.Filter.Status))
	}
	if v.Filter.Priority != "" && v.Tab == views.TabAll {
		parts = append(parts, "priority="+string(v.Filter.Priority))
	}
	if v.Filter.Search != "" && v.Tab == views.TabAll {
		parts = append(parts, fmt.Sprintf("search=%q", v.Filter.Search))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}

func renderTask(w io.Writer, v *views.TasksView, t models.Task) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Description:\t%s\n", t.Description)
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Assignee:\t%s\n", v.AssigneeName(t))
	fmt.Fprintf(tw, "Created by:\t%s\n", v.UserName(t.CreatedBy))
	if t.DueDate != nil && !t.DueDate.IsZero() {
		fmt.Fprintf(tw, "Due:\t%s (%s)\n", dateOf(t.DueDate), humanize.Time(t.DueDate.Time))
	} else {
		fmt.Fprintln(tw, "Due:\t-")
	}
	fmt.Fprintf(tw, "Created:\t%s\n", stamp(t.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", stamp(t.UpdatedAt))
	tw.Flush()
}

func stamp(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format(time.DateTime) + " UTC"
}

func renderProfile(w io.Writer, p models.Profile) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", p.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", optional(p.Email))
	fmt.Fprintf(tw, "Full name:\t%s\n", optional(p.FullName))
	role := "unknown"
	if p.IsAdmin != nil {
		role = models.RoleUser
		if *p.IsAdmin {
			role = models.RoleAdmin
		}
	}
	fmt.Fprintf(tw, "Role:\t%s\n", role)
	if p.IsActive != nil {
		fmt.Fprintf(tw, "Active:\t%s\n", yesNo(*p.IsActive))
	}
	tw.Flush()
}
