package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-service/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseToken(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "role": "PM"})
		actor, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, userID, actor.ID)
		assert.Equal(t, models.RolePM, actor.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": userID.String(), "role": "DEV"})
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "role": "ROOT"})
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("missing role", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": userID.String()})
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("subject is not a uuid", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-42", "role": "DEV"})
		_, err := ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken("not.a.token", testSecret)
		assert.Error(t, err)
	})
}

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(Middleware(testSecret))
	app.Get("/probe", append(handlers, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})...)
	return app
}

func TestMiddlewareStoresActor(t *testing.T) {
	userID := uuid.New()
	var seen *Actor
	app := newTestApp(func(c *fiber.Ctx) error {
		seen = FromContext(c)
		return c.Next()
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "GM",
	}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.ID)
	assert.Equal(t, models.RoleGM, seen.Role)
}

// A bad token is not fatal at the middleware: the request continues with a
// nil actor and each operation decides how to treat it.
func TestMiddlewareContinuesWithoutActor(t *testing.T) {
	var seen *Actor
	sentinel := &Actor{}
	app := newTestApp(func(c *fiber.Ctx) error {
		seen = sentinel
		if a := FromContext(c); a != nil {
			seen = a
		}
		return c.Next()
	})

	for name, header := range map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc",
		"invalid token": "Bearer not.a.token",
		"wrong secret":  "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"sub": uuid.NewString(), "role": "DEV"}),
	} {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusOK, resp.StatusCode, name)
		assert.Same(t, sentinel, seen, name)
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(testSecret))
	app.Get("/admin", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": uuid.NewString(), "role": "DEV"}), http.StatusForbidden},
		{"admin", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": uuid.NewString(), "role": "ADMIN"}), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
