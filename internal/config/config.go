// Package config resolves one Identity per export run from the
// environment. Prefixed variables (e.g. JANE_DOE_HARVEST_ACCOUNT_ID)
// let several identities share one environment; each lookup falls back
// to the unprefixed name. Everything is resolved once, up front; no
// component reads the environment afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mgarrido/harvest-export/internal/logging"
	"github.com/mgarrido/harvest-export/internal/sheets"
)

const accountIDVar = "HARVEST_ACCOUNT_ID"

// Defaults applied when the corresponding variable is unset.
const (
	DefaultUserAgent    = "harvest-export"
	DefaultOutputDir    = "output"
	DefaultCSVName      = "harvest_export.csv"
	DefaultRawJSON      = "harvest_raw.json"
	DefaultSummaryTasks = "OKR's & PDP's,Meetings"
)

// Identity is the full configuration for one exported account.
type Identity struct {
	Prefix string

	// Harvest credentials.
	AccountID string
	AuthToken string
	UserAgent string
	UserID    string

	// Env-level date bounds (flags take priority at resolution time).
	FromDate string
	ToDate   string

	// Output settings.
	OutputDir     string
	CSVName       string
	RawJSONName   string
	EnableRawJSON bool

	// Row shaping.
	AdvancedFields bool
	SummaryRows    bool
	ResumeRows     bool
	SummaryTasks   []string

	// Spreadsheet upload.
	UploadEnabled  bool
	SpreadsheetID  string
	SheetTab       string
	ServiceAccount sheets.ServiceAccount
}

// Name is a short human label for log lines.
func (id Identity) Name() string {
	if id.Prefix == "" {
		return "default"
	}
	return strings.TrimSuffix(id.Prefix, "_")
}

// lookup reads name with the identity prefix, falling back to the bare
// variable.
func lookup(prefix, name string) string {
	if prefix != "" {
		if v := os.Getenv(prefix + name); v != "" {
			return v
		}
	}
	return os.Getenv(name)
}

func lookupDefault(prefix, name, def string) string {
	if v := lookup(prefix, name); v != "" {
		return v
	}
	return def
}

func lookupBool(prefix, name string) bool {
	switch strings.ToLower(lookup(prefix, name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// NormalizePrefix upper-cases a user-supplied prefix and guarantees the
// trailing underscore, so "jane_doe" and "JANE_DOE_" select the same
// variables.
func NormalizePrefix(prefix string) string {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if p != "" && !strings.HasSuffix(p, "_") {
		p += "_"
	}
	return p
}

// DetectPrefixes scans the environment for configured identities: every
// non-empty X_HARVEST_ACCOUNT_ID contributes prefix X_, and a bare
// HARVEST_ACCOUNT_ID contributes the unprefixed identity. Sorted, bare
// identity first.
func DetectPrefixes() []string {
	var prefixes []string
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		if key == accountIDVar {
			prefixes = append(prefixes, "")
			continue
		}
		if strings.HasSuffix(key, "_"+accountIDVar) {
			prefixes = append(prefixes, strings.TrimSuffix(key, accountIDVar))
		}
	}
	sort.Strings(prefixes)
	return prefixes
}

// Load builds the Identity for prefix. Missing Harvest credentials are
// a configuration error; so is enabling the spreadsheet upload without
// its settings. A non-numeric user-id filter is dropped with a warning
// rather than sent to the API.
func Load(prefix string, log logging.Logger) (Identity, error) {
	id := Identity{Prefix: prefix}

	id.AccountID = lookup(prefix, accountIDVar)
	id.AuthToken = lookup(prefix, "HARVEST_AUTH_TOKEN")
	if id.AccountID == "" || id.AuthToken == "" {
		return Identity{}, fmt.Errorf("identity %q: HARVEST_ACCOUNT_ID and HARVEST_AUTH_TOKEN are required", id.Name())
	}
	id.UserAgent = lookupDefault(prefix, "HARVEST_USER_AGENT", DefaultUserAgent)

	id.UserID = lookup(prefix, "HARVEST_USER_ID")
	if id.UserID != "" {
		if _, err := strconv.ParseInt(id.UserID, 10, 64); err != nil {
			log.Warnf("identity %q: ignoring non-numeric HARVEST_USER_ID %q", id.Name(), id.UserID)
			id.UserID = ""
		}
	}

	id.FromDate = lookup(prefix, "FROM_DATE")
	id.ToDate = lookup(prefix, "TO_DATE")

	id.OutputDir = lookupDefault(prefix, "OUTPUT_DIR", DefaultOutputDir)
	id.CSVName = lookupDefault(prefix, "CSV_OUTPUT_FILE", DefaultCSVName)
	id.RawJSONName = lookupDefault(prefix, "RAW_JSON_FILE", filepath.Join(id.OutputDir, DefaultRawJSON))
	id.EnableRawJSON = lookupBool(prefix, "ENABLE_RAW_JSON")

	id.AdvancedFields = lookupBool(prefix, "ADVANCED_FIELDS")
	id.SummaryRows = lookupBool(prefix, "SUMMARY_ROWS")
	id.ResumeRows = lookupBool(prefix, "RESUME_ROWS")
	for _, task := range strings.Split(lookupDefault(prefix, "SUMMARY_TASKS", DefaultSummaryTasks), ",") {
		if task = strings.TrimSpace(task); task != "" {
			id.SummaryTasks = append(id.SummaryTasks, task)
		}
	}

	id.UploadEnabled = lookupBool(prefix, "UPLOAD_TO_GOOGLE_SHEET")
	id.SpreadsheetID = lookup(prefix, "GOOGLE_SHEET_ID")
	id.SheetTab = lookup(prefix, "GOOGLE_SHEET_TAB_NAME")
	id.ServiceAccount = sheets.ServiceAccount{
		ProjectID:      lookup(prefix, "GOOGLE_SA_PROJECT_ID"),
		PrivateKeyID:   lookup(prefix, "GOOGLE_SA_PRIVATE_KEY_ID"),
		PrivateKey:     lookup(prefix, "GOOGLE_SA_PRIVATE_KEY"),
		ClientEmail:    lookup(prefix, "GOOGLE_SA_CLIENT_EMAIL"),
		ClientID:       lookup(prefix, "GOOGLE_SA_CLIENT_ID"),
		UniverseDomain: lookup(prefix, "GOOGLE_SA_UNIVERSE_DOMAIN"),
	}

	if id.UploadEnabled {
		if id.SpreadsheetID == "" || id.SheetTab == "" {
			return Identity{}, fmt.Errorf("identity %q: upload enabled but GOOGLE_SHEET_ID or GOOGLE_SHEET_TAB_NAME is missing", id.Name())
		}
		sa := id.ServiceAccount
		if sa.ProjectID == "" || sa.PrivateKeyID == "" || sa.PrivateKey == "" ||
			sa.ClientEmail == "" || sa.ClientID == "" {
			return Identity{}, fmt.Errorf("identity %q: upload enabled but service account credentials are incomplete", id.Name())
		}
	}

	return id, nil
}
