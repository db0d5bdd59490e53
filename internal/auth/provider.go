// Package auth identifies the acting user. The engine never manages login or
// logout; it only needs to know who is acting, or that nobody is.
package auth

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/linkup-app/feed-engine/internal/engine"
	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/linkup-app/feed-engine/internal/repositories"
)

// Provider resolves a bearer credential into the acting user, or reports
// engine.ErrNotAuthenticated.
type Provider interface {
	ActorFromToken(ctx context.Context, idToken string) (*models.UserCompact, error)
}

// FirebaseProvider verifies Firebase ID tokens and resolves the matching
// account row.
type FirebaseProvider struct {
	authClient     *auth.Client
	userRepository repositories.UserRepository
}

// NewFirebaseProvider creates a new FirebaseProvider
func NewFirebaseProvider(authClient *auth.Client, userRepo repositories.UserRepository) *FirebaseProvider {
	return &FirebaseProvider{
		authClient:     authClient,
		userRepository: userRepo,
	}
}

// ActorFromToken verifies the ID token and returns the acting user. Any
// verification or lookup failure is reported as not authenticated; the
// caller does not branch on the cause.
func (p *FirebaseProvider) ActorFromToken(ctx context.Context, idToken string) (*models.UserCompact, error) {
	if idToken == "" {
		return nil, engine.ErrNotAuthenticated
	}

	token, err := p.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired ID token: %v", engine.ErrNotAuthenticated, err)
	}

	user, err := p.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		return nil, fmt.Errorf("%w: no account for authenticated identity: %v", engine.ErrNotAuthenticated, err)
	}

	actor := user.ToCompact()
	return &actor, nil
}
