package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendoreval/engine/internal/api/handlers"
	"github.com/vendoreval/engine/internal/api/types"
	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
	"github.com/vendoreval/engine/internal/services"
	appErr "github.com/vendoreval/engine/pkg/errors"
	"github.com/vendoreval/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var (
	analystID = uuid.New()
	adminID   = uuid.New()
	companyID = uuid.New()
	requestID = uuid.New()
)

const (
	analystToken = "token-analyst"
	adminToken   = "token-admin"
)

// stubVerifier maps fixed tokens to user ids, everything else fails the way
// the real verifier does.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (string, error) {
	switch token {
	case analystToken:
		return analystID.String(), nil
	case adminToken:
		return adminID.String(), nil
	}
	return "", appErr.New(appErr.CodeUnauthorized, "invalid token")
}

type stubUsers struct{ repository.UserRepository }

func (stubUsers) GetByID(_ context.Context, id any, dest *models.User) error {
	uid, _ := id.(uuid.UUID)
	switch uid {
	case analystID:
		*dest = models.User{ID: analystID, Email: "analyst@example.com", Role: models.RoleAnalyst}
		return nil
	case adminID:
		*dest = models.User{ID: adminID, Email: "admin@example.com", Role: models.RoleAdmin}
		return nil
	}
	return appErr.New(appErr.CodeNotFound, "entity not found")
}

type stubAuthService struct{ stubVerifier }

func (stubAuthService) Register(_ context.Context, email, _ string, role models.Role) (*models.User, error) {
	if email == "taken@example.com" {
		return nil, appErr.New(appErr.CodeConflict, "email already registered")
	}
	if role == models.RoleAdmin {
		return nil, appErr.New(appErr.CodeForbidden, "an admin account already exists")
	}
	return &models.User{ID: uuid.New(), Email: email, Role: models.RoleAnalyst}, nil
}

func (stubAuthService) Login(_ context.Context, email, password string) (string, *models.User, error) {
	if email == "analyst@example.com" && password == "Secret123!" {
		return analystToken, &models.User{ID: analystID}, nil
	}
	return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
}

type stubCompanyService struct{}

func (stubCompanyService) Create(_ context.Context, in *services.CreateCompanyInput) (*models.Company, error) {
	if in.Name == "Taken SpA" {
		return nil, appErr.New(appErr.CodeConflict, "company name already exists")
	}
	return &models.Company{ID: companyID, Name: in.Name, Country: "CL"}, nil
}

func (stubCompanyService) Get(_ context.Context, id uuid.UUID) (*models.Company, error) {
	if id == companyID {
		return &models.Company{ID: companyID, Name: "Acme Ltda", Country: "CL"}, nil
	}
	return nil, appErr.New(appErr.CodeNotFound, "company not found")
}

func (stubCompanyService) List(context.Context, repository.CompanyFilters) ([]models.Company, int64, error) {
	return []models.Company{}, 0, nil
}

func (stubCompanyService) Update(_ context.Context, id uuid.UUID, _ *services.UpdateCompanyInput) (*models.Company, error) {
	if id != companyID {
		return nil, appErr.New(appErr.CodeNotFound, "company not found")
	}
	return &models.Company{ID: companyID, Name: "Acme Ltda", Country: "CL"}, nil
}

func (stubCompanyService) Delete(_ context.Context, id uuid.UUID) error {
	if id != companyID {
		return appErr.New(appErr.CodeNotFound, "company not found")
	}
	return appErr.New(appErr.CodeConflict, "cannot delete a company with associated requests")
}

type stubRequestService struct{}

func (stubRequestService) Create(_ context.Context, in *services.CreateRequestInput) (*models.Request, error) {
	if in.CompanyID != companyID {
		return nil, appErr.New(appErr.CodeNotFound, "company not found")
	}
	return &models.Request{ID: requestID, CompanyID: companyID, Status: models.StatusPending, RiskScore: 60}, nil
}

func (stubRequestService) Get(_ context.Context, id uuid.UUID) (*models.Request, error) {
	if id == requestID {
		return &models.Request{ID: requestID, CompanyID: companyID, Status: models.StatusPending}, nil
	}
	return nil, appErr.New(appErr.CodeNotFound, "request not found")
}

func (stubRequestService) List(context.Context, repository.RequestFilters) ([]models.Request, int64, error) {
	return []models.Request{}, 0, nil
}

func (stubRequestService) Update(_ context.Context, id uuid.UUID, _ *services.UpdateRequestInput) (*models.Request, error) {
	if id != requestID {
		return nil, appErr.New(appErr.CodeNotFound, "request not found")
	}
	return &models.Request{ID: requestID, CompanyID: companyID, Status: models.StatusInReview}, nil
}

func (stubRequestService) Delete(_ context.Context, id uuid.UUID) error {
	if id != requestID {
		return appErr.New(appErr.CodeNotFound, "request not found")
	}
	return nil
}

func newTestRouter() http.Handler {
	return NewRouter(Dependencies{
		Verifier:         stubVerifier{},
		Users:            stubUsers{},
		AuthHandler:      handlers.NewAuthHandler(stubAuthService{}),
		CompaniesHandler: handlers.NewCompaniesHandler(stubCompanyService{}),
		RequestsHandler:  handlers.NewRequestsHandler(stubRequestService{}),
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) types.APIResponse {
	t.Helper()
	var resp types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter()
	rr := doRequest(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeEnvelope(t, rr)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{"/companies", "/requests", "/companies/" + companyID.String()} {
		rr := doRequest(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	router := newTestRouter()
	rr := doRequest(t, router, http.MethodGet, "/companies", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAnalystCanReadButNotMutateCompanies(t *testing.T) {
	router := newTestRouter()

	rr := doRequest(t, router, http.MethodGet, "/companies", analystToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/companies", analystToken, map[string]any{"name": "Nueva SpA"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, "/companies/"+companyID.String(), analystToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminCompanyLifecycleCodes(t *testing.T) {
	router := newTestRouter()

	rr := doRequest(t, router, http.MethodPost, "/companies", adminToken, map[string]any{"name": "Nueva SpA"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/companies", adminToken, map[string]any{"name": "Taken SpA"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/companies/"+uuid.NewString(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, http.MethodGet, "/companies/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// The stub company still has requests attached.
	rr = doRequest(t, router, http.MethodDelete, "/companies/"+companyID.String(), adminToken, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAnalystCanFileAndUpdateRequests(t *testing.T) {
	router := newTestRouter()

	rr := doRequest(t, router, http.MethodPost, "/requests", analystToken, map[string]any{
		"company_id":  companyID.String(),
		"risk_inputs": map[string]any{"pep_flag": true},
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, router, http.MethodPut, "/requests/"+requestID.String(), analystToken, map[string]any{
		"status": "in_review",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	// Deletion stays admin-only.
	rr = doRequest(t, router, http.MethodDelete, "/requests/"+requestID.String(), analystToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, router, http.MethodDelete, "/requests/"+requestID.String(), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCreateRequestUnknownCompanyIs404(t *testing.T) {
	router := newTestRouter()
	rr := doRequest(t, router, http.MethodPost, "/requests", adminToken, map[string]any{
		"company_id":  uuid.NewString(),
		"risk_inputs": map[string]any{},
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter()

	rr := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "not-an-email",
		"password": "Secret123!",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "ok@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "taken@example.com",
		"password": "Secret123!",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "second-admin@example.com",
		"password": "Secret123!",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestLoginCodes(t *testing.T) {
	router := newTestRouter()

	rr := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "analyst@example.com",
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeEnvelope(t, rr)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bearer", data["token_type"])
	assert.NotEmpty(t, data["access_token"])

	rr = doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "analyst@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPaginationParamValidation(t *testing.T) {
	router := newTestRouter()

	for _, q := range []string{"page=0", "page=abc", "page_size=0", "page_size=101"} {
		rr := doRequest(t, router, http.MethodGet, "/companies?"+q, adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}

	rr := doRequest(t, router, http.MethodGet, "/companies?page=1&page_size=100", adminToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestListParamValidation(t *testing.T) {
	router := newTestRouter()

	for _, q := range []string{"status=bogus", "company_id=nope", "risk_min=low", "risk_max=high"} {
		rr := doRequest(t, router, http.MethodGet, "/requests?"+q, analystToken, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}

	rr := doRequest(t, router, http.MethodGet, "/requests?status=pending&risk_min=10&risk_max=90", analystToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
