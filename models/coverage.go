package models

import (
	"time"

	"gorm.io/gorm"
)

type LiveCoverage struct {
	ID        uint               `json:"id" gorm:"primarykey"`
	Title     string             `json:"title" gorm:"not null"`
	Slug      string             `json:"slug" gorm:"uniqueIndex;not null"`
	Subject   string             `json:"subject" gorm:"not null"`
	Context   string             `json:"context" gorm:"type:text"`
	ImageURL  string             `json:"imageUrl"`
	Active    bool               `json:"active" gorm:"default:true"`
	EndDate   *time.Time         `json:"endDate"`
	Updates   []CoverageUpdate   `json:"updates,omitempty" gorm:"foreignKey:CoverageID;constraint:OnDelete:CASCADE"`
	Editors   []CoverageEditor   `json:"editors,omitempty" gorm:"foreignKey:CoverageID;constraint:OnDelete:CASCADE"`
	Questions []CoverageQuestion `json:"questions,omitempty" gorm:"foreignKey:CoverageID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `json:"-" gorm:"index"`
}

// IsLive reports whether the coverage should appear on the public site:
// the active flag is set and the end date, when present, has not passed.
func (c *LiveCoverage) IsLive(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(now) {
		return false
	}
	return true
}
