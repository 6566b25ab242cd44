package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

const defaultLeeway = 30 * time.Second

// ErrMissingSubject токен без sub.
var ErrMissingSubject = errors.New("token missing sub")

// Verifier проверяет токен и возвращает личность пользователя.
type Verifier interface {
	Verify(tokenStr string) (models.Identity, error)
}

// TokenVerifier проверяет подпись, issuer и audience токена.
type TokenVerifier struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
}

// NewHMACVerifier проверяет токены, подписанные общим секретом (HS256).
func NewHMACVerifier(secret, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{
		parser: newParser(issuer, audience, jwt.SigningMethodHS256.Name),
		keyfunc: func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
	}
}

// NewJWKSVerifier проверяет RSA-токены по ключам из JWKS-эндпоинта провайдера.
func NewJWKSVerifier(jwksURL, issuer, audience string) (*TokenVerifier, error) {
	const op = "jwt.NewJWKSVerifier"

	keyProvider, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to init JWKS keyfunc: %w", op, err)
	}
	return &TokenVerifier{
		parser: newParser(issuer, audience,
			jwt.SigningMethodRS256.Name, jwt.SigningMethodRS384.Name, jwt.SigningMethodRS512.Name),
		keyfunc: keyProvider.Keyfunc,
	}, nil
}

func newParser(issuer, audience string, methods ...string) *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithLeeway(defaultLeeway),
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
	}
	if issuer = strings.TrimSpace(issuer); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience = strings.TrimSpace(audience); audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return jwt.NewParser(opts...)
}

// Verify разбирает токен и возвращает личность пользователя.
func (v *TokenVerifier) Verify(tokenStr string) (models.Identity, error) {
	const op = "jwt.Verify"

	token, err := v.parser.ParseWithClaims(tokenStr, &Claims{}, v.keyfunc)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.Identity{}, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%s: %w", op, ErrMissingSubject)
	}
	return claims.Identity(), nil
}

// Maker выпускает HS256-токены. Используется в тестах и для локальной разработки.
type Maker struct {
	secretKey string
	issuer    string
	audience  string
	tokenTTL  time.Duration
}

// NewMaker создает Maker.
func NewMaker(secretKey, issuer, audience string, ttl time.Duration) *Maker {
	return &Maker{secretKey: secretKey, issuer: issuer, audience: audience, tokenTTL: ttl}
}

// GenerateToken подписывает токен для пользователя id.
func (m *Maker) GenerateToken(id models.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:      id.Email,
		GivenName:  id.FirstName,
		FamilyName: id.LastName,
		Picture:    id.ProfileImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}
