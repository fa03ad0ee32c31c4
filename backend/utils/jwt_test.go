package utils

import (
	"net/http/httptest"
	"testing"

	"pluain/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		claims, err := ExtractSessionFromToken(c, cfg)
		if err != nil {
			return Unauthorized(c, err.Error())
		}
		return OK(c, fiber.Map{"sid": claims.SessionID, "email": claims.Email})
	})
	return app
}

func TestGenerateAndExtractSession(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	token, err := GenerateJWTToken("session-1", "ana@example.com", cfg)
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)

		resp, err := sessionApp(cfg).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestExtractSessionRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	other := &config.Config{JWTSecret: "othersecret"}
	foreign, err := GenerateJWTToken("session-1", "ana@example.com", other)
	require.NoError(t, err)

	cases := map[string]string{
		"missing":      "",
		"garbage":      "not-a-token",
		"wrong secret": foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := sessionApp(cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
