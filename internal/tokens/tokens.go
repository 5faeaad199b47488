package tokens

import (
	"context"
	"encoding/json"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nexbytes/nexfolio/backend/go-services/pkg/middleware"
)

// Claims carried by a login token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ErrNoSecret is returned by an Issuer built without a signing secret.
var ErrNoSecret = errors.New("token signing secret is empty")

// Issuer signs and verifies HS256 login tokens. Expiry is the only invalidation.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token for the user.
func (i *Issuer) Issue(userID, email string) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrNoSecret
	}
	now := i.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return s, nil
}

// Parse validates signature, algorithm and expiry and returns the claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrNoSecret
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no userId claim")
	}
	return &claims, nil
}

// Verify implements middleware.Verifier.
func (i *Issuer) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	c, err := i.Parse(raw)
	if err != nil {
		return nil, err
	}
	return verified{claims: c}, nil
}

type verified struct {
	claims *Claims
}

// Claims decodes the token claims into v through their JSON form.
func (v verified) Claims(out interface{}) error {
	b, err := json.Marshal(v.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
