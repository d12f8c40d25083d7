package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/session"
	"scroll-and-bite/bite-svc/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type Session struct {
	Token     string           `json:"access_token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      domain.Principal `json:"user"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Creator  bool   `json:"is_creator"`
}

// ProviderIdentity is a user already verified by an external identity
// provider.
type ProviderIdentity struct {
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

type AuthService struct {
	users    UserRepository
	sessions SessionStore

	mu        sync.Mutex
	listeners []func(session.AuthEvent)
}

func NewAuthService(users UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// OnAuthStateChange registers listener for sign-in, sign-out and profile
// updates. Listeners run synchronously in registration order.
func (s *AuthService) OnAuthStateChange(listener func(session.AuthEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *AuthService) emit(event session.AuthEvent) {
	s.mu.Lock()
	listeners := append(([]func(session.AuthEvent))(nil), s.listeners...)
	s.mu.Unlock()
	for _, listener := range listeners {
		listener(event)
	}
}

func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" {
		return Session{}, ErrInvalidSignUp
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, ErrInvalidSignUp
	}
	if len(req.Password) < minPasswordLength {
		return Session{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, uuid.NewString(), strings.TrimSpace(req.Name), email, string(hash))
	if errors.Is(err, storage.ErrConflict) {
		return Session{}, ErrEmailTaken
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	if req.Creator {
		isCreator := true
		user, err = s.users.UpdateUser(ctx, user.ID, domain.PrincipalPatch{IsCreator: &isCreator})
		if err != nil {
			return Session{}, fmt.Errorf("failed to mark creator: %w", err)
		}
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	creds, err := s.users.GetCredentials(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	if creds.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.users.GetUser(ctx, creds.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to load user: %w", err)
	}
	return s.startSession(ctx, user)
}

// SignInWithProvider signs in a provider identity, creating the user on
// first sight. Provider users have no password.
func (s *AuthService) SignInWithProvider(ctx context.Context, identity ProviderIdentity) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, ErrInvalidSignUp
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		name := identity.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user, err = s.users.CreateUser(ctx, uuid.NewString(), name, email, "")
		if err == nil && identity.Image != "" {
			user, err = s.users.UpdateUser(ctx, user.ID, domain.PrincipalPatch{Image: &identity.Image})
		}
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign in with %s: %w", identity.Provider, err)
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) startSession(ctx context.Context, user domain.Principal) (Session, error) {
	token := uuid.NewString()
	expiresAt, err := s.sessions.Store(ctx, token, user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	s.emit(session.AuthEvent{Type: session.SignedIn, Token: token, Principal: &user})
	return Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetSession resolves a bearer token to its user.
func (s *AuthService) GetSession(ctx context.Context, token string) (domain.Principal, error) {
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return domain.Principal{}, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		log.Printf("Warning: failed to revoke session: %v", err)
	}
	s.emit(session.AuthEvent{Type: session.SignedOut, Token: token})
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch domain.PrincipalPatch) (domain.Principal, error) {
	user, err := s.users.UpdateUser(ctx, userID, patch)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("failed to update profile: %w", err)
	}
	s.emit(session.AuthEvent{Type: session.UserUpdated, Principal: &user})
	return user, nil
}

func (s *AuthService) Address(ctx context.Context, userID string) (domain.Address, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Address{}, err
	}
	return user.Address(), nil
}

func (s *AuthService) SetAddress(ctx context.Context, userID string, address domain.Address) (domain.Address, error) {
	user, err := s.UpdateProfile(ctx, userID, domain.AddressPatch(address))
	if err != nil {
		return domain.Address{}, err
	}
	return user.Address(), nil
}
