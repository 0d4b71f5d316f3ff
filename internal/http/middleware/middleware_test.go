package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaapi/internal/config"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace oversized request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, resp.Header.Get(RequestIDHeader), 36)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(zerolog.New(&buf)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test?x=1", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	require.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.Equal(t, "info", logData["level"])
}

func TestLogger_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Logger(zerolog.New(&buf)))

	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad")
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	tests := []struct {
		path       string
		wantStatus float64
		wantLevel  string
	}{
		{path: "/fiber-error", wantStatus: 400, wantLevel: "warn"},
		{path: "/plain-error", wantStatus: 500, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			_, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)

			var logData map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
			assert.Equal(t, tt.wantStatus, logData["status"])
			assert.Equal(t, tt.wantLevel, logData["level"])
		})
	}
}

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newAuthApp(t *testing.T, cfg config.AuthConfig) *fiber.App {
	t.Helper()
	a, err := NewAuthenticator(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(a.Middleware())
	app.Get("/me", func(c *fiber.Ctx) error {
		sub, _ := c.Locals(AuthSubjectLocalKey).(string)
		return c.SendString(sub)
	})
	return app
}

func TestAuthenticator_Secret(t *testing.T) {
	app := newAuthApp(t, config.AuthConfig{
		Enabled:  true,
		Secret:   testSecret,
		Issuer:   "portfolio",
		Audience: "media",
	})

	valid := jwt.MapClaims{
		"sub": "user-1",
		"iss": "portfolio",
		"aud": "media",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	with := func(k string, v any) jwt.MapClaims {
		c := jwt.MapClaims{}
		for key, val := range valid {
			c[key] = val
		}
		if v == nil {
			delete(c, k)
		} else {
			c[k] = v
		}
		return c
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", valid), wantStatus: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, with("exp", time.Now().Add(-time.Minute).Unix())), wantStatus: fiber.StatusUnauthorized},
		{name: "no expiry", header: "Bearer " + signToken(t, testSecret, with("exp", nil)), wantStatus: fiber.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + signToken(t, testSecret, with("iss", "someone-else")), wantStatus: fiber.StatusUnauthorized},
		{name: "wrong audience", header: "Bearer " + signToken(t, testSecret, with("aud", "billing")), wantStatus: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + signToken(t, testSecret, valid), wantStatus: fiber.StatusOK, wantBody: "user-1"},
		{name: "scheme is case insensitive", header: "bearer " + signToken(t, testSecret, valid), wantStatus: fiber.StatusOK, wantBody: "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			if tt.wantStatus == fiber.StatusUnauthorized {
				var payload map[string]any
				require.NoError(t, json.Unmarshal(body, &payload))
				assert.NotEmpty(t, payload["message"])
				assert.Equal(t, "UNAUTHORIZED", payload["code"])
			} else {
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestAuthenticator_Disabled(t *testing.T) {
	app := newAuthApp(t, config.AuthConfig{Enabled: false})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNewAuthenticator_NoKeySource(t *testing.T) {
	_, err := NewAuthenticator(context.Background(), config.AuthConfig{Enabled: true}, zerolog.Nop())
	assert.ErrorIs(t, err, errNoKeySource)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("BEARER  abc "))
	assert.Empty(t, bearerToken(""))
	assert.Empty(t, bearerToken("Bearer"))
	assert.Empty(t, bearerToken("Token abc"))
}
