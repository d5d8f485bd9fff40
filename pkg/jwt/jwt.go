package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrConfirmationInvalid = errors.New("confirmation token is invalid or expired")
	ErrConfirmationScope   = errors.New("confirmation token does not match this action")
)

// BackendClaims is the subset of the backend access token the console reads.
type BackendClaims struct {
	UserID string `json:"id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenInspector reads backend-issued tokens. With a secret it verifies the
// signature; without one it only decodes the claims.
type TokenInspector struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenInspector(secret string) *TokenInspector {
	ti := &TokenInspector{parser: jwt.NewParser(jwt.WithoutClaimsValidation())}
	if secret != "" {
		ti.secret = []byte(secret)
	}
	return ti
}

func (ti *TokenInspector) Claims(tokenString string) (*BackendClaims, error) {
	claims := &BackendClaims{}
	if ti.secret == nil {
		if _, _, err := ti.parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	token, err := ti.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return ti.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the token's exp claim lies before now. Tokens that
// are not JWTs or carry no exp are treated as live; the backend decides.
func (ti *TokenInspector) Expired(tokenString string, now time.Time) bool {
	claims, err := ti.Claims(tokenString)
	if err != nil {
		return ti.secret != nil
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}

type ConfirmClaims struct {
	SessionID string `json:"sid"`
	Action    string `json:"act"`
	Target    string `json:"tgt"`
	jwt.RegisteredClaims
}

// ConfirmService issues the short-lived tokens a confirm dialog carries. A
// destructive request is honored only when it presents one bound to the same
// session, action and target.
type ConfirmService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewConfirmService(secret string, expiry time.Duration) *ConfirmService {
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}
	return &ConfirmService{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (s *ConfirmService) Issue(sessionID, action, target string) (string, error) {
	now := s.now()
	claims := ConfirmClaims{
		SessionID: sessionID,
		Action:    action,
		Target:    target,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *ConfirmService) Verify(tokenString, sessionID, action, target string) error {
	if tokenString == "" {
		return ErrConfirmationInvalid
	}

	claims := &ConfirmClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ErrConfirmationInvalid
	}

	if claims.SessionID != sessionID || claims.Action != action || claims.Target != target {
		return ErrConfirmationScope
	}
	return nil
}

func (s *ConfirmService) Expiry() time.Duration {
	return s.expiry
}
