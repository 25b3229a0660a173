package domain

import (
	"strings"
	"time"
)

// Role is the generation flow a visitor picked.
type Role string

const (
	RoleNone         Role = ""
	RoleNovice       Role = "novice"
	RoleProfessional Role = "professional"
	RoleImageEditor  Role = "image-editor"
)

// ParseRole normalises a role value. The empty role is valid and means
// "not selected yet".
func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleNone:
		return RoleNone, true
	case RoleNovice:
		return RoleNovice, true
	case RoleProfessional:
		return RoleProfessional, true
	case RoleImageEditor:
		return RoleImageEditor, true
	default:
		return RoleNone, false
	}
}

// Session is the serialisable per-device state: the selected role and the
// identity last bound to it. It replaces ambient client-side globals.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
