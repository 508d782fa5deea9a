package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgError "github.com/AzielCF/az-evo-relay/pkg/error"
	"github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func TestRespondError(t *testing.T) {
	app := fiber.New()
	app.Get("/untyped", func(c *fiber.Ctx) error { return respondError(c, errors.New("db down")) })
	app.Get("/typed", func(c *fiber.Ctx) error { return respondError(c, pkgError.UnauthorizedError("bad key")) })

	cases := []struct {
		path   string
		status int
		code   string
		msg    string
	}{
		{"/untyped", http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "db down"},
		{"/typed", http.StatusUnauthorized, "UNAUTHORIZED", "bad key"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		if err != nil {
			t.Fatalf("request %s: %v", tc.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		var res utils.ResponseData
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("%s: decode: %v", tc.path, err)
		}
		if res.Code != tc.code || res.Message != tc.msg {
			t.Fatalf("%s: unexpected body %s", tc.path, body)
		}
	}
}
