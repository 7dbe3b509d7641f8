package forms

import (
	"strings"

	"github.com/dmitrijs2005/projectdesk/internal/client/models"
)

type Login struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"notblank"`
	Role     string `json:"role" validate:"role"`
}

// NewProject is a project submission. Role is the submitter's role and
// decides whether a mentor email is required.
type NewProject struct {
	Title       string      `json:"title" validate:"notblank"`
	Synopsis    string      `json:"synopsis"`
	MentorEmail string      `json:"mentor_email" validate:"omitempty,email"`
	Role        models.Role `json:"-"`
}

type ProjectEdit struct {
	Title    string `json:"title" validate:"notblank"`
	Synopsis string `json:"synopsis"`
}

type OriginalityCheck struct {
	Title    string `json:"title" validate:"notblank"`
	Synopsis string `json:"synopsis"`
}

// Input converts the form into the request payload. An empty synopsis is
// sent as null. Teachers never send a mentor email.
func (f NewProject) Input() models.ProjectInput {
	in := models.ProjectInput{
		Title:    strings.TrimSpace(f.Title),
		Synopsis: optional(f.Synopsis),
	}
	if f.Role == models.RoleStudent {
		in.MentorEmail = strings.TrimSpace(f.MentorEmail)
	}
	return in
}

func (f ProjectEdit) Input() models.ProjectInput {
	return models.ProjectInput{
		Title:    strings.TrimSpace(f.Title),
		Synopsis: optional(f.Synopsis),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
