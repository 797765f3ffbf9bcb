package model

import (
	"math"

	"github.com/golang-jwt/jwt/v5"
)

type DTOLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DTOLoginResponse struct {
	Message     string  `json:"message"`
	User        DTOUser `json:"user"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
}

// DTOUser is the public projection of a user; it never carries the
// password hash.
type DTOUser struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	UserType UserType `json:"user_type"`
}

type DTORegisterRequest struct {
	Username             string `json:"username" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	UserType             string `json:"user_type" validate:"omitempty,oneof=tester developer admin"`
	AcceptedTerms        bool   `json:"accepted_terms" validate:"required"`
	SubscribedNewsletter bool   `json:"subscribed_newsletter"`
}

type DTOLogoutRequest struct {
	UserID int `json:"user_id"`
}

type DTOCreateTestRequest struct {
	OwnerUserID    int    `json:"owner_user_id" validate:"required,gt=0"`
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	EndpointURL    string `json:"endpoint_url" validate:"required,url"`
	HTTPMethod     string `json:"http_method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	RequestHeaders string `json:"request_headers"`
	RequestBody    string `json:"request_body"`
	Tags           string `json:"tags"`
}

type DTORunTestRequest struct {
	StartedBy int `json:"started_by" validate:"required,gt=0"`
}

// DTORunTestResponse carries the outcome of one synchronous run. On a
// total outbound failure Error is set, ResponseStatus is zero and the
// HTTP layer still answers 200 — the failure belongs to the run, not to
// the portal request.
type DTORunTestResponse struct {
	Message        string    `json:"message"`
	RunID          int       `json:"run_id"`
	Status         RunStatus `json:"status"`
	ResponseTimeMs int64     `json:"response_time"`
	ResponseStatus int       `json:"response_status,omitempty"`
	Error          string    `json:"error,omitempty"`
}

type DTOPerformanceRunRequest struct {
	EndpointURL         string `json:"endpoint_url" validate:"required,url"`
	VirtualUsers        int    `json:"virtual_users" validate:"required,gte=1,lte=10000"`
	TestDurationSeconds int    `json:"test_duration_seconds" validate:"required,gte=1,lte=3600"`
	StartedBy           int    `json:"started_by" validate:"required,gt=0"`
}

// PerformanceResults is the synthesized statistics block returned to the
// caller and persisted as a PerformanceRun row.
type PerformanceResults struct {
	AverageMs      float64 `json:"average_ms"`
	MinMs          float64 `json:"min_ms"`
	MaxMs          float64 `json:"max_ms"`
	P95Ms          float64 `json:"p95_ms"`
	RequestsPerSec float64 `json:"requests_per_sec"`
	TotalRequests  int     `json:"total_requests"`
	ErrorRate      float64 `json:"error_rate"`
}

type DTONewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type DTODeleteRequest struct {
	UserID int `json:"user_id"`
}

// RunSummary is a test run joined with the display names needed by the
// runs list: the owning definition (or suite) name and the starting user.
type RunSummary struct {
	TestRun
	TestName      string `json:"test_name"`
	StartedByName string `json:"started_by_name"`
}

// RunDetail is a single run resolved against its definition, with
// caller-visible defaults already applied for every nullable field.
type RunDetail struct {
	RunSummary
	EndpointURL    string `json:"endpoint_url,omitempty"`
	HTTPMethod     string `json:"http_method,omitempty"`
	RequestHeaders string `json:"request_headers,omitempty"`
	RequestBody    string `json:"request_body,omitempty"`
	FinishedAtText string `json:"finished_at_text"`
}

// Pagination is the envelope returned alongside every list endpoint.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes the envelope for a given total row count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
