package security

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenKey is the storage key of the bearer token.
const TokenKey = "access_token"

type Display struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

var DefaultDisplay = Display{Name: "Current User", Role: "User"}

// Session is the process-wide holder of the bearer token.
type Session interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
	Display() Display
}

type StoreSession struct {
	store  Store
	logger *zap.Logger
}

func NewSession(store Store, logger *zap.Logger) *StoreSession {
	return &StoreSession{
		store:  store,
		logger: logger,
	}
}

func (s *StoreSession) Token() (string, bool) {
	token, ok, err := s.store.Get(TokenKey)
	if err != nil {
		s.logger.Warn("Unable to read session token", zap.Error(err))
		return "", false
	}
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}

	return token, true
}

func (s *StoreSession) SetToken(token string) error {
	return s.store.Set(TokenKey, strings.TrimSpace(token))
}

func (s *StoreSession) Clear() error {
	if err := s.store.Delete(TokenKey); err != nil {
		s.logger.Error("Unable to clear session token", zap.Error(err))
		return err
	}

	s.logger.Info("Session token cleared")
	return nil
}

func (s *StoreSession) Display() Display {
	token, ok := s.Token()
	if !ok {
		return DefaultDisplay
	}

	return DecodeDisplay(token)
}

// DecodeDisplay reads `sub` and `role` from the token payload without verifying the signature.
// The result is for display only and must never drive authorization.
func DecodeDisplay(token string) Display {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return DefaultDisplay
	}

	display := DefaultDisplay
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		display.Name = sub
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		display.Role = role
	}

	return display
}
