package report

// summaryRow builds one synthetic total row: the label goes in Notes,
// the total in Hours, everything else stays empty.
func summaryRow(label string, hours float64) Row {
	return Row{Notes: label, Hours: hours, HasHours: true}
}

// SummaryRows computes the synthetic total rows appended after the
// entry rows: billable, non-billable, one per configured task name, and
// the grand total. Totals of zero are omitted; an empty row set yields
// no summary at all.
func SummaryRows(rows []Row, taskNames []string) []Row {
	var billable, nonBillable, grand float64
	taskTotals := make([]float64, len(taskNames))

	for _, r := range rows {
		if !r.IsEntry {
			continue
		}
		if r.Billable == "Yes" {
			billable += r.Hours
		} else {
			nonBillable += r.Hours
		}
		for i, name := range taskNames {
			if r.Task == name {
				taskTotals[i] += r.Hours
			}
		}
		grand += r.Hours
	}

	var out []Row
	if billable != 0 {
		out = append(out, summaryRow("TOTAL BILLABLE", billable))
	}
	if nonBillable != 0 {
		out = append(out, summaryRow("TOTAL NON BILLABLE", nonBillable))
	}
	for i, name := range taskNames {
		if taskTotals[i] != 0 {
			out = append(out, summaryRow("TOTAL "+name, taskTotals[i]))
		}
	}
	if grand != 0 {
		out = append(out, summaryRow("TOTAL HOURS", grand))
	}
	return out
}
