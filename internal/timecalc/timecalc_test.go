package timecalc_test

import (
	"testing"
	"time"

	"github.com/mgarrido/harvest-export/internal/timecalc"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 30, 0, 0, time.UTC)
}

func TestDefaultRange(t *testing.T) {
	// 2026-08-24 is a Monday.
	tests := []struct {
		name     string
		now      time.Time
		wantFrom string
		wantTo   string
	}{
		{"monday picks previous week", date(2026, 8, 24), "2026-08-17", "2026-08-23"},
		{"thursday picks previous week", date(2026, 8, 27), "2026-08-17", "2026-08-23"},
		{"friday picks current week", date(2026, 8, 28), "2026-08-24", "2026-08-30"},
		{"saturday picks current week", date(2026, 8, 29), "2026-08-24", "2026-08-30"},
		{"sunday picks current week", date(2026, 8, 30), "2026-08-24", "2026-08-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := timecalc.DefaultRange(tt.now)
			if got := from.Format(timecalc.DateLayout); got != tt.wantFrom {
				t.Errorf("from = %s, want %s", got, tt.wantFrom)
			}
			if got := to.Format(timecalc.DateLayout); got != tt.wantTo {
				t.Errorf("to = %s, want %s", got, tt.wantTo)
			}
			if from.Weekday() != time.Monday {
				t.Errorf("from weekday = %v, want Monday", from.Weekday())
			}
			if to.Weekday() != time.Sunday {
				t.Errorf("to weekday = %v, want Sunday", to.Weekday())
			}
			if days := int(to.Sub(from).Hours() / 24); days != 6 {
				t.Errorf("range spans %d days, want 6", days)
			}
		})
	}
}

func TestLastMonthRange(t *testing.T) {
	from, to := timecalc.LastMonthRange(date(2026, 8, 29))
	if got := from.Format(timecalc.DateLayout); got != "2026-07-01" {
		t.Errorf("from = %s, want 2026-07-01", got)
	}
	if got := to.Format(timecalc.DateLayout); got != "2026-07-31" {
		t.Errorf("to = %s, want 2026-07-31", got)
	}

	// January rollover.
	from, to = timecalc.LastMonthRange(date(2026, 1, 15))
	if got := from.Format(timecalc.DateLayout); got != "2025-12-01" {
		t.Errorf("from = %s, want 2025-12-01", got)
	}
	if got := to.Format(timecalc.DateLayout); got != "2025-12-31" {
		t.Errorf("to = %s, want 2025-12-31", got)
	}
}

func TestResolveRange(t *testing.T) {
	now := date(2026, 8, 25) // Tuesday

	tests := []struct {
		name             string
		flagFrom, flagTo string
		envFrom, envTo   string
		want             timecalc.Range
		wantErr          bool
	}{
		{
			name:     "flags win over env",
			flagFrom: "2026-01-01", flagTo: "2026-01-31",
			envFrom: "2026-02-01", envTo: "2026-02-28",
			want: timecalc.Range{From: "2026-01-01", To: "2026-01-31"},
		},
		{
			name:    "env used when no flags",
			envFrom: "2026-02-01", envTo: "2026-02-28",
			want: timecalc.Range{From: "2026-02-01", To: "2026-02-28"},
		},
		{
			name: "default week when nothing given",
			want: timecalc.Range{From: "2026-08-17", To: "2026-08-23"},
		},
		{
			name:     "reversed flag order accepted as-is",
			flagFrom: "2026-01-31", flagTo: "2026-01-01",
			want: timecalc.Range{From: "2026-01-31", To: "2026-01-01"},
		},
		{name: "only from flag is an error", flagFrom: "2026-01-01", wantErr: true},
		{name: "only to flag is an error", flagTo: "2026-01-31", wantErr: true},
		{name: "only FROM_DATE is an error", envFrom: "2026-01-01", wantErr: true},
		{name: "only TO_DATE is an error", envTo: "2026-01-31", wantErr: true},
		{name: "malformed flag date", flagFrom: "01/01/2026", flagTo: "2026-01-31", wantErr: true},
		{name: "malformed env date", envFrom: "2026-1-1", envTo: "2026-01-31", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timecalc.ResolveRange(tt.flagFrom, tt.flagTo, tt.envFrom, tt.envTo, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRange: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRange = %+v, want %+v", got, tt.want)
			}
		})
	}
}
