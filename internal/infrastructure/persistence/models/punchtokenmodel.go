package models

import "time"

// PunchTokenModel represents the database persistence model for punch
// tokens. Only the hash of the credential is ever stored.
type PunchTokenModel struct {
	ID            string     `gorm:"primarykey;size:64"`
	UserID        string     `gorm:"size:64;not null;index"`
	DeviceID      string     `gorm:"size:128;not null"`
	UserAgentHash string     `gorm:"size:64"`
	TokenHash     string     `gorm:"size:64;not null;uniqueIndex"`
	IssuedAt      time.Time  `gorm:"not null"`
	ExpiresAt     time.Time  `gorm:"not null;index"`
	RevokedAt     *time.Time `gorm:""`
	LastSeenAt    *time.Time `gorm:""`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (PunchTokenModel) TableName() string {
	return "punch_tokens"
}
