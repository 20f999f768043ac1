package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/service"
)

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (*domain.Identity, error) {
	if token == "good" {
		return &domain.Identity{ID: "seller-1"}, nil
	}
	return nil, domain.ErrTokenSignature
}

// echoIdentity answers with the caller ID it finds in the context.
type echoIdentity struct{}

func (echoIdentity) Exec(ctx context.Context, _, _ string, _ map[string]interface{}) *graphql.Response {
	id, err := service.RequireIdentity(ctx)
	if err != nil {
		data, _ := json.Marshal(map[string]string{"caller": err.Error()})
		return &graphql.Response{Data: data}
	}
	data, _ := json.Marshal(map[string]string{"caller": id.ID})
	return &graphql.Response{Data: data}
}

func newTestRouter() http.Handler {
	return NewRouter(Dependencies{
		Verifier:   stubVerifier{},
		Schema:     echoIdentity{},
		Registerer: prometheus.NewRegistry(),
		Log:        zerolog.Nop(),
	})
}

func postGraphQL(t *testing.T, h http.Handler, auth string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ obtenerUsuario { id } }"}`))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Data
}

func TestRouter_GraphQLIdentity(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		name string
		auth string
		want string
	}{
		{"anonymous", "", domain.ErrUnauthenticated.Error()},
		{"valid token", "Bearer good", "seller-1"},
		{"bare token", "good", "seller-1"},
		{"bad token", "Bearer forged", domain.ErrTokenSignature.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := postGraphQL(t, h, tt.auth)
			if data["caller"] != tt.want {
				t.Errorf("expected caller %q, got %v", tt.want, data["caller"])
			}
		})
	}
}

func TestRouter_HealthChecks(t *testing.T) {
	h := newTestRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness without backends: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"disabled"`) {
		t.Errorf("disabled backends should be reported, got %s", rec.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newTestRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
