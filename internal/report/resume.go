package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mgarrido/harvest-export/internal/timecalc"
)

// resumeDateLayout is the compact per-line date label, e.g. "Mon 17 Aug".
const resumeDateLayout = "Mon 02 Jan"

// resumeTitle labels the block appended after the separator rows.
const resumeTitle = "RESUME"

// resumeSeparatorRows is the number of blank rows before the title.
const resumeSeparatorRows = 3

// resumeLine renders one entry as
//
//	Mon 17 Aug >>> [PLT] Platform ( Acme ) Dev (notes) - 2 HOURS
//
// omitting the bracket/paren segments whose source field is empty.
func resumeLine(r Row) string {
	var b strings.Builder
	b.WriteString(abbreviateDate(r.Date))
	b.WriteString(" >>>")
	if r.ProjectCode != "" {
		fmt.Fprintf(&b, " [%s]", r.ProjectCode)
	}
	if r.Project != "" {
		b.WriteString(" " + r.Project)
	}
	if r.Client != "" {
		fmt.Fprintf(&b, " ( %s )", r.Client)
	}
	if r.Task != "" {
		b.WriteString(" " + r.Task)
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, " (%s)", r.Notes)
	}
	unit := "HOURS"
	if r.Hours == 1 {
		unit = "HOUR"
	}
	fmt.Fprintf(&b, " - %s %s", formatHours(r.Hours), unit)
	return b.String()
}

func abbreviateDate(date string) string {
	t, err := time.Parse(timecalc.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(resumeDateLayout)
}

// ResumeRows groups the entry rows by date, sorts the groups
// chronologically, and renders the whole recap into a single
// multi-line cell preceded by blank separator rows and a title row.
func ResumeRows(rows []Row) []Row {
	byDate := make(map[string][]Row)
	for _, r := range rows {
		if !r.IsEntry {
			continue
		}
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	if len(byDate) == 0 {
		return nil
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	// ISO dates sort chronologically as strings.
	sort.Strings(dates)

	var lines []string
	for _, d := range dates {
		for _, r := range byDate[d] {
			lines = append(lines, resumeLine(r))
		}
	}

	out := make([]Row, resumeSeparatorRows, resumeSeparatorRows+2)
	out = append(out, Row{Date: resumeTitle})
	out = append(out, Row{Date: strings.Join(lines, "\n")})
	return out
}
