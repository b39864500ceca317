package models

import "time"

type CoverageUpdate struct {
	ID         uint          `json:"id" gorm:"primarykey"`
	CoverageID uint          `json:"coverage_id" gorm:"not null;index"`
	Coverage   *LiveCoverage `json:"coverage,omitempty" gorm:"foreignKey:CoverageID"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	ImageURL   string        `json:"imageUrl"`
	Important  bool          `json:"important" gorm:"default:false"`
	AuthorID   *uint         `json:"author_id"`
	Author     *User         `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Timestamp  *time.Time    `json:"timestamp"`
	CreatedAt  time.Time     `json:"created_at"`
}

// EffectiveTime is the instant an update is ordered by in the timeline.
// The explicit timestamp wins; creation time is the fallback.
func (u *CoverageUpdate) EffectiveTime() time.Time {
	if u.Timestamp != nil {
		return *u.Timestamp
	}
	return u.CreatedAt
}
