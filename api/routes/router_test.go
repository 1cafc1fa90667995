package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Leadfive-LLC/estimate-system/internal/auth"
	"github.com/Leadfive-LLC/estimate-system/internal/clients"
	"github.com/Leadfive-LLC/estimate-system/internal/estimates"
	"github.com/Leadfive-LLC/estimate-system/internal/items"
	"github.com/Leadfive-LLC/estimate-system/internal/users"
	pkgAuth "github.com/Leadfive-LLC/estimate-system/pkg/auth"
	"github.com/Leadfive-LLC/estimate-system/pkg/auth/session"
	"github.com/Leadfive-LLC/estimate-system/pkg/config"
	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
	"github.com/Leadfive-LLC/estimate-system/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionVerifier struct {
	ok bool
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.ok, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "token", User: &users.UserDTO{}}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "token", User: &users.UserDTO{}}, nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubClientService struct{}

func (stubClientService) List(ctx context.Context) ([]clients.ClientDTO, error) {
	return []clients.ClientDTO{}, nil
}

func (stubClientService) Get(ctx context.Context, id uuid.UUID) (*clients.ClientDetailDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubClientService) Create(ctx context.Context, input clients.CreateClientInput) (*clients.ClientDTO, error) {
	return &clients.ClientDTO{}, nil
}

func (stubClientService) Update(ctx context.Context, id uuid.UUID, input clients.UpdateClientInput) (*clients.ClientDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubItemService struct{}

func (stubItemService) List(ctx context.Context, category string) ([]items.ItemDTO, error) {
	return []items.ItemDTO{}, nil
}

func (stubItemService) Categories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (stubItemService) Get(ctx context.Context, id uuid.UUID) (*items.ItemDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubItemService) Create(ctx context.Context, input items.CreateItemInput) (*items.ItemDTO, error) {
	return &items.ItemDTO{}, nil
}

func (stubItemService) Update(ctx context.Context, id uuid.UUID, input items.UpdateItemInput) (*items.ItemDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubItemService) DerivedPrice(ctx context.Context, id uuid.UUID) (*items.DerivedPriceDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubEstimateService struct{}

func (stubEstimateService) List(ctx context.Context, userID uuid.UUID, status enums.EstimateStatus) ([]estimates.EstimateSummaryDTO, error) {
	return []estimates.EstimateSummaryDTO{}, nil
}

func (stubEstimateService) Get(ctx context.Context, userID, estimateID uuid.UUID) (*estimates.EstimateDetailDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubEstimateService) Create(ctx context.Context, userID uuid.UUID, input estimates.CreateEstimateInput) (*estimates.EstimateDetailDTO, error) {
	return &estimates.EstimateDetailDTO{}, nil
}

func (stubEstimateService) Update(ctx context.Context, userID, estimateID uuid.UUID, input estimates.UpdateEstimateInput) (*estimates.EstimateDetailDTO, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubEstimateService) Delete(ctx context.Context, userID, estimateID uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, sessions session.AccessSessionChecker) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		Sessions:        sessions,
		AuthService:     stubAuthService{},
		ClientService:   stubClientService{},
		ItemService:     stubItemService{},
		EstimateService: stubEstimateService{},
	})
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})
	for _, path := range []string{"/api/clients", "/api/items", "/api/estimates"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token for %s got %d", path, resp.Code)
		}
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: true})
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleEstimator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for client list got %d", resp.Code)
	}
}

func TestRevokedSessionRejectedDespiteValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: false})
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleEstimator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestLoginRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestLoginAcceptsValidPayload(t *testing.T) {
	router := newTestRouter(testConfig(), stubSessionVerifier{ok: true})
	body := `{"email":"taro@example.com","password":"green-thumb"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}
}

func TestEstimateStatusFilterValidatedAtRoute(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubSessionVerifier{ok: true})
	req := httptest.NewRequest(http.MethodGet, "/api/estimates?status=bogus", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleEstimator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status got %d", resp.Code)
	}
}

func TestMetricsEndpointMountedWithRegistry(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	registry := prometheus.NewRegistry()
	router := NewRouter(Deps{
		Config:          testConfig(),
		Logger:          logg,
		DB:              stubPinger{},
		Sessions:        stubSessionVerifier{ok: true},
		Registry:        registry,
		AuthService:     stubAuthService{},
		ClientService:   stubClientService{},
		ItemService:     stubItemService{},
		EstimateService: stubEstimateService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics scrape got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
