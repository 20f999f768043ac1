package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/service"
)

type stubVerifier struct {
	verifyFn func(token string) (*domain.Identity, error)
}

func (s *stubVerifier) Verify(token string) (*domain.Identity, error) {
	return s.verifyFn(token)
}

func run(t *testing.T, header string, v TokenVerifier) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	h := Identity(v)(func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen == nil {
		t.Fatal("next not called")
	}
	return seen
}

func TestIdentity_BearerToken(t *testing.T) {
	v := &stubVerifier{verifyFn: func(token string) (*domain.Identity, error) {
		if token != "abc" {
			t.Fatalf("unexpected token %q", token)
		}
		return &domain.Identity{ID: "seller-1", Email: "ana@example.com"}, nil
	}}

	c := run(t, "Bearer abc", v)

	id := service.IdentityFrom(c.Request().Context())
	if id == nil || id.ID != "seller-1" {
		t.Fatalf("identity not set: %+v", id)
	}
	if c.Get("seller_id") != "seller-1" {
		t.Fatalf("seller_id not set on echo context")
	}
}

func TestIdentity_BareToken(t *testing.T) {
	v := &stubVerifier{verifyFn: func(token string) (*domain.Identity, error) {
		if token != "abc" {
			t.Fatalf("unexpected token %q", token)
		}
		return &domain.Identity{ID: "seller-1"}, nil
	}}

	c := run(t, "abc", v)

	if service.IdentityFrom(c.Request().Context()) == nil {
		t.Fatal("expected identity from bare token")
	}
}

func TestIdentity_MissingHeaderIsAnonymous(t *testing.T) {
	v := &stubVerifier{verifyFn: func(string) (*domain.Identity, error) {
		t.Fatal("verifier should not be called")
		return nil, nil
	}}

	c := run(t, "", v)

	_, err := service.RequireIdentity(c.Request().Context())
	if err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestIdentity_RejectedTokenIsRemembered(t *testing.T) {
	v := &stubVerifier{verifyFn: func(string) (*domain.Identity, error) {
		return nil, domain.ErrTokenExpired
	}}

	c := run(t, "Bearer old", v)

	ctx := c.Request().Context()
	if service.IdentityFrom(ctx) != nil {
		t.Fatal("no identity expected for a rejected token")
	}
	if _, err := service.RequireIdentity(ctx); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"abc":          "abc",
		"":             "",
		"   ":          "",
	}
	for in, want := range cases {
		if got := bearerToken(in); got != want {
			t.Errorf("bearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}
