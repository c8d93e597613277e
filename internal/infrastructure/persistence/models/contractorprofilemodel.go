package models

import "time"

// ContractorProfileModel represents the database persistence model for
// worker eligibility records.
type ContractorProfileModel struct {
	UserID         string `gorm:"primarykey;size:64"`
	Agency         string `gorm:"size:128"`
	EmploymentType string `gorm:"size:20;not null"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (ContractorProfileModel) TableName() string {
	return "contractor_profiles"
}
