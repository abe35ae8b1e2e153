package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gomovies/user"

	"github.com/google/uuid"
)

const defaultSessionTTL = 30 * 24 * time.Hour

type Service interface {
	GoogleAuthURL(state string) (string, error)
	LoginWithGoogle(ctx context.Context, code string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	SignOut(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, accessToken string) (user.User, Claims, error)
	Identify(ctx context.Context, c Claims) (user.User, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateProfile(ctx context.Context, id, name, avatarURL string) (user.User, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type TokenProvider interface {
	GenerateAccessToken(c Claims) (string, error)
	GenerateRefreshToken(c Claims) (string, error)
	ParseAccessToken(token string) (Claims, error)
	ParseRefreshToken(token string) (Claims, error)
}

type GoogleOAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (OAuthUser, error)
}

type Usecase struct {
	userRepo       UserRepository
	sessionRepo    SessionRepository
	tokenProvider  TokenProvider
	googleProvider GoogleOAuthProvider
	sessionTTL     time.Duration
	now            func() time.Time
}

func NewUsecase(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProvider TokenProvider,
	googleProvider GoogleOAuthProvider,
	sessionTTL time.Duration,
) *Usecase {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &Usecase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		tokenProvider:  tokenProvider,
		googleProvider: googleProvider,
		sessionTTL:     sessionTTL,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (uc *Usecase) GoogleAuthURL(state string) (string, error) {
	if uc.googleProvider == nil {
		return "", ErrOAuthNotConfigured
	}
	if strings.TrimSpace(state) == "" {
		return "", ErrInvalidOAuthState
	}
	return uc.googleProvider.AuthCodeURL(state), nil
}

// LoginWithGoogle exchanges an authorization code for a new session. First-time
// users are created from their Google profile; returning users get it refreshed.
func (uc *Usecase) LoginWithGoogle(ctx context.Context, code string) (TokenPair, error) {
	if uc.googleProvider == nil {
		return TokenPair{}, ErrOAuthNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return TokenPair{}, ErrInvalidOAuthUser
	}

	oauthUser, err := uc.googleProvider.Exchange(ctx, code)
	if err != nil {
		return TokenPair{}, err
	}
	if !oauthUser.EmailVerified || strings.TrimSpace(oauthUser.Email) == "" {
		return TokenPair{}, ErrInvalidOAuthUser
	}

	u, err := uc.findOrCreateUser(ctx, oauthUser)
	if err != nil {
		return TokenPair{}, err
	}

	now := uc.now()
	s := Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.CreateSession(ctx, s); err != nil {
		return TokenPair{}, err
	}

	return uc.issue(Claims{UserID: u.ID, SessionID: s.ID, Email: u.Email})
}

func (uc *Usecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	c, err := uc.tokenProvider.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	if _, err := uc.activeSession(ctx, c.SessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}

	return uc.issue(c)
}

func (uc *Usecase) SignOut(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return user.ErrNotLoggedIn
	}
	return uc.sessionRepo.DeleteSession(ctx, sessionID)
}

func (uc *Usecase) Authenticate(ctx context.Context, accessToken string) (user.User, Claims, error) {
	c, err := uc.tokenProvider.ParseAccessToken(accessToken)
	if err != nil {
		return user.User{}, Claims{}, ErrInvalidAccessToken
	}

	u, err := uc.Identify(ctx, c)
	if err != nil {
		return user.User{}, Claims{}, err
	}
	return u, c, nil
}

// Identify resolves already verified claims to a user, failing when the
// session has been signed out or has expired.
func (uc *Usecase) Identify(ctx context.Context, c Claims) (user.User, error) {
	s, err := uc.activeSession(ctx, c.SessionID)
	if err != nil {
		return user.User{}, err
	}
	if s.UserID != c.UserID {
		return user.User{}, ErrInvalidAccessToken
	}
	return uc.userRepo.GetByID(ctx, c.UserID)
}

func (uc *Usecase) activeSession(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrSessionNotFound
	}

	s, err := uc.sessionRepo.GetSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if s.Expired(uc.now()) {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (uc *Usecase) findOrCreateUser(ctx context.Context, o OAuthUser) (user.User, error) {
	u, err := uc.userRepo.GetByEmail(ctx, o.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return uc.userRepo.CreateUser(ctx, user.User{
			ID:        uuid.NewString(),
			Email:     o.Email,
			Name:      o.Name,
			AvatarURL: o.Picture,
		})
	}
	if err != nil {
		return user.User{}, err
	}

	if u.Name == o.Name && u.AvatarURL == o.Picture {
		return u, nil
	}
	return uc.userRepo.UpdateProfile(ctx, u.ID, o.Name, o.Picture)
}

func (uc *Usecase) issue(c Claims) (TokenPair, error) {
	accessToken, err := uc.tokenProvider.GenerateAccessToken(c)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := uc.tokenProvider.GenerateRefreshToken(c)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
