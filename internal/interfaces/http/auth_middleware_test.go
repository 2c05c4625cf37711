package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/berlivn/eriflex-api/internal/interfaces/http"
	pkgjwt "github.com/berlivn/eriflex-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "eriflex-api-test"
	testExpMin    = 60
)

// buildTestApp mounts AuthMiddleware + RequireRole in front of a handler answering 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return tokenFor(t, testUserID, role)
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_AnyOfSeveral(t *testing.T) {
	app := buildTestApp("admin", "user")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "user"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UserBlockedOnAdminRoute(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "user"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenWithoutRole(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	app := buildTestApp("admin")
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "MISSING_TOKEN"},
		{"wrong scheme", "Basic abc", "INVALID_TOKEN"},
		{"empty bearer", "Bearer  ", "MISSING_TOKEN"},
		{"garbage", "Bearer not.a.token", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "/protected", tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestAuthMiddleware_ExtractsClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	resp := doRequest(t, app, "/me", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp("admin"), "/protected", "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSelfOrRole(t *testing.T) {
	app := fiber.New()
	app.Get("/users/:id",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireSelfOrRole("id", "admin"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	self := doRequest(t, app, "/users/"+testUserID, tokenForRole(t, "user"))
	defer self.Body.Close()
	assert.Equal(t, http.StatusOK, self.StatusCode)

	other := doRequest(t, app, "/users/someone-else", tokenForRole(t, "user"))
	defer other.Body.Close()
	assert.Equal(t, http.StatusForbidden, other.StatusCode)

	admin := doRequest(t, app, "/users/someone-else", tokenForRole(t, "admin"))
	defer admin.Body.Close()
	assert.Equal(t, http.StatusOK, admin.StatusCode)
}

func TestRateLimitPerUser(t *testing.T) {
	app := fiber.New()
	app.Get("/limited",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RateLimitPerUser(0.001, 2),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	alice := tokenFor(t, "alice", "user")
	bob := tokenFor(t, "bob", "user")

	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, "/limited", alice)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := doRequest(t, app, "/limited", alice)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "RATE_LIMITED")

	other := doRequest(t, app, "/limited", bob)
	defer other.Body.Close()
	assert.Equal(t, http.StatusOK, other.StatusCode, "buckets are per user")
}

func TestRateLimitPerUser_Disabled(t *testing.T) {
	app := fiber.New()
	app.Get("/open", apphttp.RateLimitPerUser(0, 0), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	for i := 0; i < 20; i++ {
		resp := doRequest(t, app, "/open", "")
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
