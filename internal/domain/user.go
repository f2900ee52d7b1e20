package domain

import "time"

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	IsAdmin        bool
	ApprovalStatus ApprovalStatus
	CreatedAt      time.Time
}
