package attendance

import (
	"fmt"
	"time"

	vo "timeclock/internal/domain/attendance/valueobjects"
)

// DriftFlagThreshold is the default absolute client/server clock
// discrepancy at which an event is flagged for the exceptions report.
// Drift never blocks a punch.
const DriftFlagThreshold = 5 * time.Minute

// GeoSnapshot captures the geofence evaluation recorded on an event.
// All fields are nil when the request carried no coordinate.
type GeoSnapshot struct {
	Lat            *float64
	Lng            *float64
	AccuracyMeters *float64
	DistanceMeters *float64
	InRange        *bool
}

// Event is one row of the append-only punch audit log. It is the sole
// source of truth: current clock state and weekly hours are always
// recomputed from accepted events, never cached durably. Rows are immutable
// once written, except the signature pair on a CLOCK_OUT row.
type Event struct {
	ID                      string
	UserID                  string
	SiteID                  string
	Agency                  string
	Type                    vo.PunchType
	Status                  vo.EventStatus
	Reason                  vo.BlockReason // set iff Status is BLOCKED
	ServerTimestamp         time.Time
	ClientReportedTimestamp *time.Time
	DriftMs                 *int64
	DriftFlag               bool
	Geo                     GeoSnapshot
	WifiStatus              vo.WifiStatus
	VerificationMethod      vo.VerificationMethod
	DeviceID                string
	IdempotencyKey          string
	IPAddress               string
	PunchTokenID            string
	SignedAt                *time.Time
	SignatureImage          string
}

// EventAttrs carries the request context shared by accepted and blocked
// events. Constructors stamp status, reason, and drift on top of it.
type EventAttrs struct {
	ID                      string
	UserID                  string
	SiteID                  string
	Agency                  string
	Type                    vo.PunchType
	ServerTimestamp         time.Time
	ClientReportedTimestamp *time.Time
	Geo                     GeoSnapshot
	WifiStatus              vo.WifiStatus
	VerificationMethod      vo.VerificationMethod
	DeviceID                string
	IdempotencyKey          string
	IPAddress               string
	PunchTokenID            string
	DriftFlagThreshold      time.Duration // zero means DriftFlagThreshold
}

func newEvent(attrs EventAttrs) (*Event, error) {
	if attrs.ID == "" {
		return nil, fmt.Errorf("event id is required")
	}
	if attrs.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if !attrs.Type.IsValid() {
		return nil, fmt.Errorf("invalid punch type %q", attrs.Type)
	}
	if attrs.ServerTimestamp.IsZero() {
		return nil, fmt.Errorf("server timestamp is required")
	}

	e := &Event{
		ID:                      attrs.ID,
		UserID:                  attrs.UserID,
		SiteID:                  attrs.SiteID,
		Agency:                  attrs.Agency,
		Type:                    attrs.Type,
		ServerTimestamp:         attrs.ServerTimestamp,
		ClientReportedTimestamp: attrs.ClientReportedTimestamp,
		Geo:                     attrs.Geo,
		WifiStatus:              attrs.WifiStatus,
		VerificationMethod:      attrs.VerificationMethod,
		DeviceID:                attrs.DeviceID,
		IdempotencyKey:          attrs.IdempotencyKey,
		IPAddress:               attrs.IPAddress,
		PunchTokenID:            attrs.PunchTokenID,
	}
	threshold := attrs.DriftFlagThreshold
	if threshold <= 0 {
		threshold = DriftFlagThreshold
	}
	e.computeDrift(threshold)
	return e, nil
}

// NewAcceptedEvent builds an OK audit row. Accepted rows never carry a
// block reason.
func NewAcceptedEvent(attrs EventAttrs) (*Event, error) {
	e, err := newEvent(attrs)
	if err != nil {
		return nil, err
	}
	e.Status = vo.StatusOK
	return e, nil
}

// NewBlockedEvent builds a BLOCKED audit row with its specific reason.
// The status/reason pairing is only constructible through here.
func NewBlockedEvent(attrs EventAttrs, reason vo.BlockReason) (*Event, error) {
	if !reason.IsValid() {
		return nil, fmt.Errorf("invalid block reason %q", reason)
	}
	e, err := newEvent(attrs)
	if err != nil {
		return nil, err
	}
	e.Status = vo.StatusBlocked
	e.Reason = reason
	return e, nil
}

// computeDrift derives driftMs = server - client and raises the audit flag
// at the threshold. Client timestamps are untrusted and only used here.
func (e *Event) computeDrift(threshold time.Duration) {
	if e.ClientReportedTimestamp == nil {
		return
	}
	drift := e.ServerTimestamp.Sub(*e.ClientReportedTimestamp).Milliseconds()
	e.DriftMs = &drift
	if drift < 0 {
		e.DriftFlag = -drift >= threshold.Milliseconds()
	} else {
		e.DriftFlag = drift >= threshold.Milliseconds()
	}
}

// Accepted reports whether the event is an OK row.
func (e *Event) Accepted() bool {
	return e.Status == vo.StatusOK
}

// Signed reports whether a completed signature is attached.
func (e *Event) Signed() bool {
	return e.SignedAt != nil && e.SignatureImage != ""
}

// CanAttachSignature reports whether the signature pair may be set:
// only an accepted CLOCK_OUT row without a prior signature qualifies.
func (e *Event) CanAttachSignature() bool {
	return e.Accepted() && e.Type == vo.PunchClockOut && e.SignedAt == nil
}
