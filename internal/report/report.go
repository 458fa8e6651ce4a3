// Package report turns Harvest time entries into the flat tabular rows
// of the export.
package report

import (
	"strconv"
	"strings"

	"github.com/mgarrido/harvest-export/internal/harvest"
	"github.com/mgarrido/harvest-export/internal/logging"
)

// baseColumns is the fixed, exhaustive column set of the export.
var baseColumns = []string{
	"Date", "Client", "Project", "Project Code", "Task", "Notes", "Hours",
	"Billable?", "Invoiced?", "First Name", "Last Name", "Roles", "Employee?",
	"External Reference URL", "Harvest ID", "Approved", "Department",
}

// advancedColumns are appended when the advanced-fields switch is on.
var advancedColumns = []string{
	"Billable Amount", "Rounded Hours", "Locked?", "Created At", "Updated At",
}

// Columns returns the ordered header for the export.
func Columns(advanced bool) []string {
	if !advanced {
		return append([]string(nil), baseColumns...)
	}
	cols := append([]string(nil), baseColumns...)
	return append(cols, advancedColumns...)
}

// Row is one output row. Hours stays numeric until serialization so the
// summary pass can aggregate it; HasHours distinguishes a real zero
// from an empty cell. IsEntry marks rows that came from a time entry,
// as opposed to appended summary/resume rows.
type Row struct {
	Date        string
	Client      string
	Project     string
	ProjectCode string
	Task        string
	Notes       string
	Hours       float64
	HasHours    bool
	Billable    string
	Invoiced    string
	FirstName   string
	LastName    string
	Roles       string
	Employee    string
	ExternalURL string
	HarvestID   string
	Approved    string
	Department  string

	BillableAmount *float64
	RoundedHours   *float64
	Locked         string
	CreatedAt      string
	UpdatedAt      string

	IsEntry bool
}

// Record serializes the row in column order. Every row supplies every
// column; inapplicable cells are empty strings.
func (r Row) Record(advanced bool) []string {
	hours := ""
	if r.HasHours {
		hours = formatHours(r.Hours)
	}
	rec := []string{
		r.Date, r.Client, r.Project, r.ProjectCode, r.Task, r.Notes, hours,
		r.Billable, r.Invoiced, r.FirstName, r.LastName, r.Roles, r.Employee,
		r.ExternalURL, r.HarvestID, r.Approved, r.Department,
	}
	if advanced {
		amount := ""
		if r.BillableAmount != nil {
			amount = formatHours(*r.BillableAmount)
		}
		rounded := ""
		if r.RoundedHours != nil {
			rounded = formatHours(*r.RoundedHours)
		}
		rec = append(rec, amount, rounded, r.Locked, r.CreatedAt, r.UpdatedAt)
	}
	return rec
}

// Records serializes a row set in column order.
func Records(rows []Row, advanced bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record(advanced))
	}
	return out
}

func formatHours(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// SplitName splits a full display name on whitespace: first token is
// the first name, the remaining tokens joined by single spaces form the
// last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Options controls the normalization pass.
type Options struct {
	// AdvancedFields enables the enrichment columns.
	AdvancedFields bool
}

// BuildRows maps each entry to exactly one Row. An entry without an
// identifier is structurally broken and is skipped with a diagnostic;
// missing optional fields never fail a record. The returned skipped
// count is the number of dropped entries.
func BuildRows(entries []harvest.TimeEntry, opts Options, log logging.Logger) (rows []Row, skipped int) {
	for _, e := range entries {
		if e.ID == 0 {
			log.Errorf("skipping time entry with no id (spent_date=%q)", e.SpentDate)
			skipped++
			continue
		}
		rows = append(rows, buildRow(e, opts))
	}
	return rows, skipped
}

func buildRow(e harvest.TimeEntry, opts Options) Row {
	row := Row{
		Date:      e.SpentDate,
		Notes:     e.Notes,
		Hours:     e.Hours,
		HasHours:  true,
		Billable:  yesNo(e.Billable),
		Invoiced:  yesNo(e.IsBilled),
		Roles:     "Developer",
		HarvestID: strconv.FormatInt(e.ID, 10),
		Approved:  yesNo(e.IsLocked),
		IsEntry:   true,
	}
	if e.Client != nil {
		row.Client = e.Client.Name
	}
	if e.Project != nil {
		row.Project = e.Project.Name
		row.ProjectCode = e.Project.Code
	}
	if e.Task != nil {
		row.Task = e.Task.Name
	}
	if e.User != nil {
		row.FirstName, row.LastName = SplitName(e.User.Name)
	}
	row.Employee = yesNo(e.UserAssignment != nil && e.UserAssignment.IsActive)
	if e.ExternalReference != nil {
		row.ExternalURL = e.ExternalReference.Permalink
	}

	if opts.AdvancedFields {
		if e.BillableRate != nil {
			amount := *e.BillableRate * e.Hours
			row.BillableAmount = &amount
		}
		rounded := e.RoundedHours
		row.RoundedHours = &rounded
		row.Locked = yesNo(e.IsLocked)
		row.CreatedAt = e.CreatedAt
		row.UpdatedAt = e.UpdatedAt
	}
	return row
}
