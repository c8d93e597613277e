package dto

import "time"

// IssueTokenRequest asks for a fresh punch token bound to a device.
type IssueTokenRequest struct {
	UserID    string
	DeviceID  string
	UserAgent string
}

// IssueTokenResponse carries the plain token exactly once.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SubmitPunchRequest is one clock action attempt with everything the gate
// pipeline needs. ClientIP must be the transport-level peer address.
type SubmitPunchRequest struct {
	UserID            string
	SiteID            string
	Agency            string
	Type              string
	DeviceID          string
	IdempotencyKey    string
	PunchToken        string
	UserAgent         string
	ClientIP          string
	ClientTimestampMS *int64
	Lat               *float64
	Lng               *float64
	AccuracyMeters    *float64
}

// PunchEventResponse is the audit-row view returned to clients and agency
// listings.
type PunchEventResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	SiteID             string     `json:"site_id,omitempty"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	Reason             string     `json:"reason,omitempty"`
	ServerTimestamp    time.Time  `json:"server_timestamp"`
	DriftMs            *int64     `json:"drift_ms,omitempty"`
	DriftFlag          bool       `json:"drift_flag"`
	WifiStatus         string     `json:"wifi_status,omitempty"`
	VerificationMethod string     `json:"verification_method,omitempty"`
	InRange            *bool      `json:"in_range,omitempty"`
	DistanceMeters     *float64   `json:"distance_meters,omitempty"`
	SignedAt           *time.Time `json:"signed_at,omitempty"`
}

// SubmitPunchResponse reports the pipeline outcome. RetryAfterSeconds is
// populated only on RATE_LIMITED rejections.
type SubmitPunchResponse struct {
	Accepted          bool                `json:"accepted"`
	Reason            string              `json:"reason,omitempty"`
	RetryAfterSeconds int                 `json:"retry_after_seconds,omitempty"`
	State             string              `json:"state,omitempty"`
	Event             *PunchEventResponse `json:"event,omitempty"`
}

// CurrentStateResponse is the replayed clock state for a user.
type CurrentStateResponse struct {
	State       string     `json:"state"`
	LastPunch   string     `json:"last_punch,omitempty"`
	LastPunchAt *time.Time `json:"last_punch_at,omitempty"`
}

// GetWeeklyRowsRequest selects the week to reconstruct. WeekOf is an
// ISO date inside the desired week; empty means the current week.
type GetWeeklyRowsRequest struct {
	UserID string
	SiteID string
	WeekOf string
}

// DayRowResponse is one of the seven day rows of a timecard.
type DayRowResponse struct {
	Date        string     `json:"date"`
	Worked      bool       `json:"worked"`
	Shift       string     `json:"shift,omitempty"`
	FirstIn     *time.Time `json:"first_in,omitempty"`
	LastOut     *time.Time `json:"last_out,omitempty"`
	Hours       float64    `json:"hours"`
	VerifiedVia string     `json:"verified_via"`
	Signed      *bool      `json:"signed,omitempty"`
}

// TimesheetResponse is the fixed-shape weekly timecard: seven day rows and
// one total.
type TimesheetResponse struct {
	WeekStart  string           `json:"week_start"`
	Days       []DayRowResponse `json:"days"`
	TotalHours float64          `json:"total_hours"`
}

// AttachSignatureRequest binds a captured signature to a clock-out row.
type AttachSignatureRequest struct {
	UserID         string
	EventID        string
	SignatureImage string
}

// AttachSignatureResponse confirms the signing instant.
type AttachSignatureResponse struct {
	EventID  string    `json:"event_id"`
	SignedAt time.Time `json:"signed_at"`
}

// ListDriftExceptionsRequest selects the reporting window.
type ListDriftExceptionsRequest struct {
	From     string
	To       string
	Page     int
	PageSize int
}

// ListEventsRequest filters the agency-facing audit listing.
type ListEventsRequest struct {
	UserID   string
	SiteID   string
	Agency   string
	Page     int
	PageSize int
}
