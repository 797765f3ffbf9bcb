package model

import (
	"time"
)

type UserType string

const (
	UserTypeTester    UserType = "tester"
	UserTypeDeveloper UserType = "developer"
	UserTypeAdmin     UserType = "admin"
)

type User struct {
	ID                   int        `json:"id"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	PasswordHash         string     `json:"-"`
	UserType             UserType   `json:"user_type"`
	IsActive             bool       `json:"is_active"`
	AcceptedTerms        bool       `json:"accepted_terms"`
	AcceptedTermsAt      *time.Time `json:"accepted_terms_at,omitempty"`
	SubscribedNewsletter bool       `json:"subscribed_newsletter"`
	LastLoginAt          *time.Time `json:"last_login_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// APITest is a saved definition of one HTTP call a user wants to repeat.
type APITest struct {
	ID             int       `json:"id"`
	OwnerUserID    int       `json:"owner_user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	EndpointURL    string    `json:"endpoint_url"`
	HTTPMethod     string    `json:"http_method"`
	RequestHeaders string    `json:"request_headers"`
	RequestBody    string    `json:"request_body"`
	Tags           string    `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
	// OwnerName is joined from users for list views.
	OwnerName string `json:"owner_name,omitempty"`
}

type TestSuite struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RunStatus string

const (
	RunStatusQueued  RunStatus = "queued"
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// IsTerminal reports whether a run may no longer be mutated.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusPassed || s == RunStatusFailed
}

// TestRun records one execution attempt of an API test definition or a
// simulated performance scenario. A run references either an API test or
// a test suite, never both.
type TestRun struct {
	ID            int        `json:"id"`
	APITestID     *int       `json:"api_test_id,omitempty"`
	SuiteID       *int       `json:"suite_id,omitempty"`
	StartedBy     int        `json:"started_by"`
	Name          string     `json:"name"`
	Reference     string     `json:"reference"`
	Status        RunStatus  `json:"status"`
	Environment   string     `json:"environment,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	DurationMs    int64      `json:"duration_ms"`
	TotalRequests int        `json:"total_requests"`
	SuccessCount  int        `json:"success_count"`
	FailedCount   int        `json:"failed_count"`
	SkippedCount  int        `json:"skipped_count"`
	SuccessRate   float64    `json:"success_rate"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PerformanceRun holds the synthesized statistics attached 1:1 to a
// performance test run.
type PerformanceRun struct {
	ID                  int     `json:"id"`
	TestRunID           int     `json:"test_run_id"`
	VirtualUsers        int     `json:"virtual_users"`
	TestDurationSeconds int     `json:"test_duration_seconds"`
	AverageMs           float64 `json:"average_ms"`
	MinMs               float64 `json:"min_ms"`
	MaxMs               float64 `json:"max_ms"`
	P95Ms               float64 `json:"p95_ms"`
	RequestsPerSec      float64 `json:"requests_per_sec"`
	TotalRequests       int     `json:"total_requests"`
	ErrorRate           float64 `json:"error_rate"`
}

// ResponseLog records one outbound call made during a run. API test runs
// make exactly one call, so request_index is always 1 for them.
type ResponseLog struct {
	ID             int       `json:"id"`
	TestRunID      int       `json:"test_run_id"`
	RequestIndex   int       `json:"request_index"`
	RequestMethod  string    `json:"request_method"`
	RequestURL     string    `json:"request_url"`
	ResponseStatus int       `json:"response_status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	IsSuccess      bool      `json:"is_success"`
	ResponseBody   string    `json:"response_body"`
	CreatedAt      time.Time `json:"created_at"`
}

type AuditLog struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewsletterSubscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStats aggregates the counters shown on the portal dashboard.
type DashboardStats struct {
	ActiveUsers        int     `json:"active_users"`
	TotalTests         int     `json:"total_tests"`
	TotalRuns          int     `json:"total_runs"`
	PassedRuns         int     `json:"passed_runs"`
	AverageSuccessRate float64 `json:"average_success_rate"`
}
