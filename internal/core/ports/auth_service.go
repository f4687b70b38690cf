package ports

import (
	"context"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

type AuthService interface {
	// Register creates a client account. Role is never caller-supplied.
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
