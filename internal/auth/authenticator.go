package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret    = errors.New("signing secret is empty")
	ErrEmptyIdentity    = errors.New("identity is empty")
	ErrMalformedSession = errors.New("malformed")
	ErrInvalidToken     = errors.New("invalid or expired")
	ErrIdentityMismatch = errors.New("identity mismatch")
)

const DefaultTTL = 24 * time.Hour

// Identity is the stable user key bound into a session token.
type Identity struct {
	MobileNumber string `json:"mobile_number"`
}

// Session is what a caller presents on every authorized request.
type Session struct {
	User  Identity `json:"user"`
	Token string   `json:"token"`
}

type Claims struct {
	MobileNumber string `json:"mobile_number"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Authenticator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and validating tokens.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// Issue signs a token for id that expires after the configured TTL.
func (a *Authenticator) Issue(id Identity) (string, error) {
	if id.MobileNumber == "" {
		return "", ErrEmptyIdentity
	}

	now := a.now()
	claims := Claims{
		MobileNumber: id.MobileNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Validate checks the token signature and expiry and that it was issued to
// claimed. The returned error is one of ErrMalformedSession, ErrInvalidToken
// or ErrIdentityMismatch.
func (a *Authenticator) Validate(claimed Identity, tokenString string) error {
	if claimed.MobileNumber == "" || tokenString == "" {
		return ErrMalformedSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	if claims.MobileNumber != claimed.MobileNumber {
		return ErrIdentityMismatch
	}
	return nil
}

// ValidateSession is Validate over the wire shape.
func (a *Authenticator) ValidateSession(s *Session) error {
	if s == nil {
		return ErrMalformedSession
	}
	return a.Validate(s.User, s.Token)
}
