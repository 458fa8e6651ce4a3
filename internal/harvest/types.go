package harvest

// NamedRef is a nested object carrying only an id and a display name
// (client, task, user).
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProjectRef is the nested project object. Code is optional and may be
// null in the API response.
type ProjectRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// UserAssignment describes the entry user's assignment on the project.
type UserAssignment struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

// ExternalReference links an entry to an external tool (e.g. an issue
// tracker permalink).
type ExternalReference struct {
	ID        string `json:"id"`
	Permalink string `json:"permalink"`
}

// TimeEntry is one tracked unit of time as returned by the Harvest API.
// Optional fields stay at their zero value when absent.
type TimeEntry struct {
	ID           int64    `json:"id"`
	SpentDate    string   `json:"spent_date"`
	Hours        float64  `json:"hours"`
	RoundedHours float64  `json:"rounded_hours"`
	Notes        string   `json:"notes"`
	Billable     bool     `json:"billable"`
	IsBilled     bool     `json:"is_billed"`
	IsLocked     bool     `json:"is_locked"`
	BillableRate *float64 `json:"billable_rate"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`

	User              *NamedRef          `json:"user"`
	Client            *NamedRef          `json:"client"`
	Project           *ProjectRef        `json:"project"`
	Task              *NamedRef          `json:"task"`
	UserAssignment    *UserAssignment    `json:"user_assignment"`
	ExternalReference *ExternalReference `json:"external_reference"`
}

// Payload is the shape written to the optional raw JSON dump; it mirrors
// the API's top-level envelope.
type Payload struct {
	TimeEntries []TimeEntry `json:"time_entries"`
}

// timeEntriesResponse is one page of the time_entries endpoint.
type timeEntriesResponse struct {
	TimeEntries  []TimeEntry `json:"time_entries"`
	NextPage     *int        `json:"next_page"`
	TotalPages   int         `json:"total_pages"`
	TotalEntries int         `json:"total_entries"`
}
