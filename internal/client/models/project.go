// Package models defines client-side data models used by the projectdesk CLI.
package models

import (
	"errors"
	"fmt"
)

// Role is the identity class a user registered with. It gates which
// collections are fetched and which actions are offered.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts s into a Role. Only "student" and "teacher" are accepted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Status is the lifecycle state of a project. The backend owns transitions:
//
//	pending --approve--> approved
//	pending --reject-->  rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is exposed for s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Action is a decision a teacher takes on a pending project.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

var ErrUnknownAction = errors.New("unknown action")

// ParseAction converts s into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionReject:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Project mirrors the backend representation of a registered project.
type Project struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Synopsis *string `json:"synopsis"`
	OwnerID  *int64  `json:"owner_id"`
	Status   Status  `json:"status"`
}

// SynopsisText returns the synopsis or a placeholder when none was provided.
func (p Project) SynopsisText() string {
	if p.Synopsis == nil || *p.Synopsis == "" {
		return "No synopsis provided."
	}
	return *p.Synopsis
}

// Editable reports whether a user with role may edit or delete p from the
// dashboard. Students may only touch their own pending submissions; the
// backend enforces ownership.
func (p Project) Editable(role Role) bool {
	switch role {
	case RoleTeacher:
		return true
	case RoleStudent:
		return !p.Status.Terminal()
	default:
		return false
	}
}

// ProjectInput is the payload for creating or updating a project.
// MentorEmail is only sent when a student registers a new project.
type ProjectInput struct {
	Title       string  `json:"title"`
	Synopsis    *string `json:"synopsis"`
	MentorEmail string  `json:"mentor_email,omitempty"`
}
