package models

import "time"

type QuestionStatus string

const (
	QuestionPending  QuestionStatus = "pending"
	QuestionApproved QuestionStatus = "approved"
	QuestionRejected QuestionStatus = "rejected"
)

type CoverageQuestion struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	CoverageID uint           `json:"coverage_id" gorm:"not null;index"`
	Coverage   *LiveCoverage  `json:"coverage,omitempty" gorm:"foreignKey:CoverageID"`
	Username   string         `json:"username" gorm:"not null"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	Status     QuestionStatus `json:"status" gorm:"default:'pending'"`
	Answered   bool           `json:"answered" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CanModerate reports whether approve/reject is still allowed.
// Both transitions are only valid from the pending state.
func (q *CoverageQuestion) CanModerate() bool {
	return q.Status == QuestionPending
}

// CanAnswer reports whether a moderator may still publish a reply.
// A question must be approved and not already answered.
func (q *CoverageQuestion) CanAnswer() bool {
	return q.Status == QuestionApproved && !q.Answered
}
