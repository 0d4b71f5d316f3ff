package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"mediaapi/internal/config"
)

const (
	// AuthSubjectLocalKey holds the "sub" claim of an authenticated request.
	AuthSubjectLocalKey = "auth_subject"
	// AuthTokenLocalKey holds the parsed *jwt.Token of an authenticated request.
	AuthTokenLocalKey = "auth_token"
)

var errNoKeySource = errors.New("auth: AUTH_JWKS_URL or AUTH_JWT_SECRET is required")

// Authenticator verifies bearer tokens against a JWKS endpoint or a shared HS256 secret.
type Authenticator struct {
	cfg     config.AuthConfig
	log     zerolog.Logger
	jwks    *keyfunc.JWKS
	methods []string
}

// NewAuthenticator prepares token verification. With a JWKS URL the key set is fetched
// immediately and refreshed in the background until ctx is done.
func NewAuthenticator(ctx context.Context, cfg config.AuthConfig, log zerolog.Logger) (*Authenticator, error) {
	a := &Authenticator{cfg: cfg, log: log.With().Str("component", "auth").Logger()}
	if !cfg.Enabled {
		return a, nil
	}

	switch {
	case cfg.JWKSURL != "":
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				a.log.Error().Err(err).Msg("jwks refresh error")
			},
		})
		if err != nil {
			return nil, err
		}
		a.jwks = jwks
		a.methods = []string{"RS256", "RS384", "RS512", "ES256", "ES384"}
	case cfg.Secret != "":
		a.methods = []string{"HS256"}
	default:
		return nil, errNoKeySource
	}
	return a, nil
}

func (a *Authenticator) keyFunc(t *jwt.Token) (any, error) {
	if a.jwks != nil {
		return a.jwks.Keyfunc(t)
	}
	return []byte(a.cfg.Secret), nil
}

// Middleware rejects requests without a valid bearer token when auth is enabled.
func (a *Authenticator) Middleware() fiber.Handler {
	if a == nil || !a.cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(a.methods), jwt.WithExpirationRequired()}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}
	if a.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.cfg.Audience))
	}

	return func(c *fiber.Ctx) error {
		raw := bearerToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return unauthorized(c, "missing bearer token")
		}

		token, err := jwt.Parse(raw, a.keyFunc, opts...)
		if err != nil || !token.Valid {
			a.log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
			return unauthorized(c, "invalid token")
		}

		if sub, err := token.Claims.GetSubject(); err == nil {
			c.Locals(AuthSubjectLocalKey, sub)
		}
		c.Locals(AuthTokenLocalKey, token)
		return c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *fiber.Ctx, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message":    message,
		"code":       "UNAUTHORIZED",
		"request_id": rid,
	})
}
