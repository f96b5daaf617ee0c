package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// AuthContextKey is the key type used to store authentication data in request context
type AuthContextKey string

// AuthContextKeyStudent stores the authenticated student principal
const AuthContextKeyStudent AuthContextKey = "authenticated_student"

// ExtractBearerToken extracts the Bearer token from the Authorization header
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("authorization header must start with 'Bearer '")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("bearer token is empty")
	}

	return token, nil
}

// SetAuthenticatedStudent sets the authenticated student in request context
func SetAuthenticatedStudent(ctx context.Context, student *models.AuthenticatedStudent) context.Context {
	return context.WithValue(ctx, AuthContextKeyStudent, student)
}

// GetAuthenticatedStudent retrieves the authenticated student from request context
func GetAuthenticatedStudent(ctx context.Context) (*models.AuthenticatedStudent, error) {
	student, ok := ctx.Value(AuthContextKeyStudent).(*models.AuthenticatedStudent)
	if !ok || student == nil {
		return nil, fmt.Errorf("no authenticated student found in context")
	}
	return student, nil
}
