package auth

import (
	"testing"
	"time"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
)

// TestSecret is the signing secret handler tests share with their middleware.
const TestSecret = "test-secret"

// GetAccessToken issues a valid token for the given user, for tests that need
// an authenticated request.
func GetAccessToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := NewTokenService(TestSecret, time.Hour).Issue(user.ID, user.Role, user.CompanyID)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}
