package models

import "time"

// CoverageEditor assigns a user to a live coverage, optionally with a
// free-text role label such as "Reporter" or "Fact-checker".
type CoverageEditor struct {
	ID         uint          `json:"id" gorm:"primarykey"`
	CoverageID uint          `json:"coverage_id" gorm:"not null;uniqueIndex:idx_coverage_user"`
	Coverage   *LiveCoverage `json:"coverage,omitempty" gorm:"foreignKey:CoverageID"`
	UserID     uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_coverage_user"`
	User       User          `json:"user" gorm:"foreignKey:UserID"`
	Role       string        `json:"role"`
	CreatedAt  time.Time     `json:"created_at"`
}
