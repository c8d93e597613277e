package models

import "time"

// AttendanceEventModel represents the database persistence model for punch
// audit rows.
//
// IdempotencyScope is only populated on accepted rows and carries the
// unique index enforcing one accepted punch per idempotency key. Blocked
// rows keep the submitted key in IdempotencyKey for auditing but never
// occupy the unique slot. Scopes older than the reuse horizon are cleared
// so an expired key can be accepted again.
type AttendanceEventModel struct {
	ID                      string     `gorm:"primarykey;size:64"`
	UserID                  string     `gorm:"size:64;not null;index:idx_attendance_events_user_ts,priority:1"`
	SiteID                  string     `gorm:"size:64;index"`
	Agency                  string     `gorm:"size:128"`
	Type                    string     `gorm:"size:20;not null"`
	Status                  string     `gorm:"size:10;not null;index"`
	Reason                  string     `gorm:"size:40"`
	ServerTimestamp         time.Time  `gorm:"not null;index:idx_attendance_events_user_ts,priority:2"`
	ClientReportedTimestamp *time.Time `gorm:""`
	DriftMs                 *int64     `gorm:""`
	DriftFlag               bool       `gorm:"not null;default:false;index"`
	GeoLat                  *float64   `gorm:""`
	GeoLng                  *float64   `gorm:""`
	GeoAccuracyMeters       *float64   `gorm:""`
	GeoDistanceMeters       *float64   `gorm:""`
	GeoInRange              *bool      `gorm:""`
	WifiStatus              string     `gorm:"size:20"`
	VerificationMethod      string     `gorm:"size:20"`
	DeviceID                string     `gorm:"size:128"`
	IdempotencyKey          string     `gorm:"size:128"`
	IdempotencyScope        *string    `gorm:"size:128;uniqueIndex:uniq_attendance_events_idem_scope"`
	IPAddress               string     `gorm:"size:45"`
	PunchTokenID            string     `gorm:"size:64"`
	SignedAt                *time.Time `gorm:""`
	SignatureImage          string     `gorm:"type:text"`
	CreatedAt               time.Time
}

// TableName specifies the table name for GORM
func (AttendanceEventModel) TableName() string {
	return "attendance_events"
}
