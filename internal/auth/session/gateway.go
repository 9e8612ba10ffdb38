// Package session orchestrates login, registration and current-user
// resolution on top of the user store, password hashing and the token
// service.
package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lans/llm-answer-watcher/internal/auth/password"
	"github.com/lans/llm-answer-watcher/internal/auth/token"
	"github.com/lans/llm-answer-watcher/internal/db"
	"github.com/lans/llm-answer-watcher/internal/db/models"
)

// ErrIncorrectCredentials covers both unknown email and wrong password.
// One value for both keeps login failures indistinguishable, so responses
// cannot be used to enumerate accounts.
var ErrIncorrectCredentials = errors.New("incorrect email or password")

// ErrUnauthorized covers every way a bearer token can fail to resolve to an
// account: bad signature, expiry, or the account being gone.
var ErrUnauthorized = errors.New("could not validate credentials")

// Gateway composes the auth collaborators behind one session API.
type Gateway struct {
	users    *db.UserStore
	tokens   *token.Service
	tokenTTL time.Duration
}

// NewGateway creates a session gateway. A non-positive ttl falls back to the
// token service default.
func NewGateway(users *db.UserStore, tokens *token.Service, tokenTTL time.Duration) *Gateway {
	return &Gateway{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

// Login verifies the credentials and issues a bearer token.
// When the account does not exist a dummy hash comparison runs anyway, so
// the two failure paths cost the same.
func (g *Gateway) Login(email, plaintext string) (string, error) {
	user, err := g.users.FindByEmail(email)
	if err != nil {
		return "", fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		password.DummyVerify()
		return "", ErrIncorrectCredentials
	}
	if !password.Verify(plaintext, user.PasswordHash) {
		return "", ErrIncorrectCredentials
	}

	tok, err := g.tokens.Issue(user.Email, g.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

// Register hashes the password and creates the account.
// Returns db.ErrEmailTaken when the email is already registered.
func (g *Gateway) Register(email, plaintext string) (*models.User, error) {
	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := g.users.CreateUser(email, hash)
	if err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("👤 Registered user %d (%s)", user.ID, user.Email)
	return user, nil
}

// CurrentUser resolves a bearer token to its account. Expired tokens are
// logged distinctly but every failure surfaces as ErrUnauthorized.
func (g *Gateway) CurrentUser(bearer string) (*models.User, error) {
	subject, err := g.tokens.Verify(bearer)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			log.Printf("🔒 Rejected expired token")
		}
		return nil, ErrUnauthorized
	}

	user, err := g.users.FindByEmail(subject)
	if err != nil {
		return nil, fmt.Errorf("current user lookup: %w", err)
	}
	if user == nil {
		// Token outlived the account it was issued for.
		return nil, ErrUnauthorized
	}
	return user, nil
}

// UpdateAPIKeys stores new provider keys for an already-resolved user.
// Empty or missing keys preserve whatever was stored before.
func (g *Gateway) UpdateAPIKeys(userID uint, googleKey, groqKey *string) (*models.User, error) {
	user, err := g.users.UpdateAPIKeys(userID, googleKey, groqKey)
	if err != nil {
		return nil, fmt.Errorf("update api keys: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
