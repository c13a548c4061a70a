package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/model"
	"github.com/fitweb/fitweb/internal/repository"
	"github.com/fitweb/fitweb/internal/upstream"
)

// SessionCookieName is the fixed key the session rides under in the browser.
const SessionCookieName = "session_token"

var ErrInvalidSessionCookie = errors.New("invalid session cookie")

// SessionService owns the session lifecycle: login creates a row from the
// verified handoff token, restore revalidates it against the tracker API,
// logout and any upstream auth failure destroy it. The row holds token and
// user together, so a user can never exist without a token.
type SessionService struct {
	sessions     repository.SessionRepository
	tracker      *upstream.Client
	secret       string
	expiry       time.Duration
	isProduction bool
}

func NewSessionService(
	sessions repository.SessionRepository,
	tracker *upstream.Client,
	secret string,
	expiry time.Duration,
	isProduction bool,
) *SessionService {
	return &SessionService{
		sessions:     sessions,
		tracker:      tracker,
		secret:       secret,
		expiry:       expiry,
		isProduction: isProduction,
	}
}

// Login exchanges the one-time token from the chat bot handoff and persists
// the resulting session. The upstream verify call is the validation; the
// session is trusted from then on without another round-trip.
func (s *SessionService) Login(ctx context.Context, oneTimeToken string) (*model.Session, error) {
	token, user, err := s.tracker.VerifyToken(ctx, oneTimeToken)
	if err != nil {
		return nil, fmt.Errorf("verify handoff token: %w", err)
	}

	session := &model.Session{
		Token:       token,
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		ExpiresAt:   time.Now().Add(s.expiry),
	}
	err = s.sessions.Create(session)
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Restore revalidates a persisted session against the tracker API. Any
// non-2xx answer, not just an auth failure, destroys the row: a session that
// cannot be revalidated is treated as logged out rather than retried.
func (s *SessionService) Restore(ctx context.Context, sessionID string) (*model.Session, *model.User, error) {
	session, err := s.sessions.ByID(sessionID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.tracker.Me(ctx, session.Token)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.Is(err, upstream.ErrUnauthorized) || errors.As(err, &apiErr) {
			_ = s.sessions.Delete(session.ID)
		}
		return nil, nil, err
	}
	return session, user, nil
}

func (s *SessionService) ByID(sessionID string) (*model.Session, error) {
	return s.sessions.ByID(sessionID)
}

func (s *SessionService) Logout(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// InvalidateFromContext is wired as the API client's unauthorized hook: any
// upstream 401/403, from any endpoint, clears the persisted session of the
// request that triggered it.
func (s *SessionService) InvalidateFromContext(ctx context.Context) {
	session := ctxkeys.Session(ctx)
	if session == nil {
		return
	}
	_ = s.sessions.Delete(session.ID)
}

// GenerateCookie signs the session id into the cookie value so a tampered
// cookie never reaches the database.
func (s *SessionService) GenerateCookie(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(s.expiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *SessionService) VerifyCookie(value string) (string, error) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", ErrInvalidSessionCookie
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidSessionCookie
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionCookie
	}
	return sid, nil
}

func (s *SessionService) SetSessionCookie(w http.ResponseWriter, value string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
