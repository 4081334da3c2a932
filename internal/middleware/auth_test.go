package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/medilink/records-api/internal/model"
	svcauth "github.com/medilink/records-api/internal/service/auth"
	"github.com/medilink/records-api/pkg/auth"
	apperrors "github.com/medilink/records-api/pkg/errors"
)

var _ svcauth.AuthService = (*mockAuthService)(nil)

type mockAuthService struct {
	jwtSvc  auth.JWTService
	profile *model.Profile
	revoked map[string]bool
}

func newMockAuthService(role model.Role) *mockAuthService {
	userID := uuid.New()
	return &mockAuthService{
		jwtSvc: auth.NewJWTService("test-secret", time.Hour),
		profile: &model.Profile{
			UserID:   userID,
			Role:     role,
			FullName: "Test User",
		},
		revoked: make(map[string]bool),
	}
}

func (m *mockAuthService) SignUp(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	m.revoked[token] = true
	return nil
}

func (m *mockAuthService) Profile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return m.profile, nil
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.revoked[token] {
		return nil, apperrors.Unauthorized(nil)
	}
	claims, err := m.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (m *mockAuthService) token(t *testing.T) string {
	t.Helper()
	token, err := m.jwtSvc.GenerateAccessToken(m.profile.UserID, "user@example.com", string(m.profile.Role))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func setupEngine(svc svcauth.AuthService, requiredRole model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	mw := NewAuthMiddleware(svc)
	engine.GET("/protected", mw.Authenticate(), mw.RequireRole(requiredRole), func(c *gin.Context) {
		session := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID})
	})
	return engine
}

func TestAuthenticateMissingHeader(t *testing.T) {
	engine := setupEngine(newMockAuthService(model.RoleDoctor), model.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	engine := setupEngine(newMockAuthService(model.RoleDoctor), model.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateAndRoleMatch(t *testing.T) {
	svc := newMockAuthService(model.RoleDoctor)
	engine := setupEngine(svc, model.RoleDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+svc.token(t))
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleMismatchIsForbidden(t *testing.T) {
	svc := newMockAuthService(model.RoleDoctor)
	engine := setupEngine(svc, model.RoleHospital)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+svc.token(t))
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRevokedTokenRejected(t *testing.T) {
	svc := newMockAuthService(model.RoleDoctor)
	engine := setupEngine(svc, model.RoleDoctor)
	token := svc.token(t)

	assert.NoError(t, svc.Logout(context.Background(), token))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
