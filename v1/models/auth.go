package models

import "fmt"

// AuthenticatedStudent is the verified identity attached to every request
// by the JWT auth middleware
type AuthenticatedStudent struct {
	StudentID string
	Email     string
	Role      StudentRole
}

// NewAuthenticatedStudent builds the request principal from verified token
// claims, rejecting tokens without a usable identity
func NewAuthenticatedStudent(studentID, email string, role StudentRole) (*AuthenticatedStudent, error) {
	if studentID == "" {
		return nil, fmt.Errorf("token is missing the studentId claim")
	}
	if role == "" {
		role = RoleStudent
	}
	if !role.Valid() {
		return nil, fmt.Errorf("token carries unknown role %q", role)
	}
	return &AuthenticatedStudent{
		StudentID: studentID,
		Email:     email,
		Role:      role,
	}, nil
}

// IsUniversityAdmin reports whether the principal holds the university-admin role
func (s *AuthenticatedStudent) IsUniversityAdmin() bool {
	return s.Role == RoleUniversityAdmin
}
