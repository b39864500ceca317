package models

import "time"

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateCoverageRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=255"`
	Slug     string     `json:"slug" binding:"omitempty,max=255"`
	Subject  string     `json:"subject" binding:"required,min=1,max=255"`
	Context  string     `json:"context"`
	ImageURL string     `json:"imageUrl" binding:"omitempty,url"`
	Active   *bool      `json:"active"`
	EndDate  *time.Time `json:"endDate"`
}

type UpdateCoverageRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=255"`
	Subject  string     `json:"subject" binding:"required,min=1,max=255"`
	Context  string     `json:"context"`
	ImageURL string     `json:"imageUrl" binding:"omitempty,url"`
	Active   *bool      `json:"active"`
	EndDate  *time.Time `json:"endDate"`
}

type CreateUpdateRequest struct {
	Content   string     `json:"content" binding:"required"`
	ImageURL  string     `json:"imageUrl" binding:"omitempty,url"`
	Important bool       `json:"important"`
	Timestamp *time.Time `json:"timestamp"`
}

type AssignEditorRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,max=100"`
}

type SubmitQuestionRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Content  string `json:"content" binding:"required,min=1"`
}

type UpdateQuestionStatusRequest struct {
	Status QuestionStatus `json:"status" binding:"required,oneof=approved rejected"`
}

type AnswerQuestionRequest struct {
	Content   string `json:"content" binding:"required"`
	Important bool   `json:"important"`
}
