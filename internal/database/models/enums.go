package models

import "strings"

// MemberRole is the role a user holds inside their company
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "Admin"
	MemberRoleMember MemberRole = "Member"
)

// IsValid checks if the MemberRole is valid
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

// ParseMemberRole accepts any casing of a known role
func ParseMemberRole(raw string) (MemberRole, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return MemberRoleAdmin, true
	case "member":
		return MemberRoleMember, true
	}
	return "", false
}

// KanbanStatus is the board column a task sits in
type KanbanStatus string

const (
	KanbanStatusTodo       KanbanStatus = "todo"
	KanbanStatusInProgress KanbanStatus = "in_progress"
	KanbanStatusReview     KanbanStatus = "review"
	KanbanStatusDone       KanbanStatus = "done"
)

// IsValid checks if the KanbanStatus is valid
func (s KanbanStatus) IsValid() bool {
	switch s {
	case KanbanStatusTodo, KanbanStatusInProgress, KanbanStatusReview, KanbanStatusDone:
		return true
	}
	return false
}

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// IsValid checks if the SaleStatus is valid
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a sale may move from s to next.
// Cancelled is the void state and cannot be left.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	if !next.IsValid() {
		return false
	}
	return s != SaleStatusCancelled
}
