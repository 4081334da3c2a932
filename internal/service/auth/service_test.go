package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/repository"
	"github.com/medilink/records-api/pkg/auth"
	apperrors "github.com/medilink/records-api/pkg/errors"
	"github.com/medilink/records-api/pkg/security"
)

var _ repository.UserRepository = (*mockUserRepository)(nil)

type mockUserRepository struct {
	CreateWithProfileFunc func(ctx context.Context, user *model.User, profile *model.Profile) error
	GetByEmailFunc        func(ctx context.Context, email string) (*model.User, error)
	GetProfileFunc        func(ctx context.Context, userID uuid.UUID) (*model.Profile, error)

	users    map[string]*model.User
	profiles map[uuid.UUID]*model.Profile

	profileLookups int
}

func newMockUserRepo() *mockUserRepository {
	return &mockUserRepository{
		users:    make(map[string]*model.User),
		profiles: make(map[uuid.UUID]*model.Profile),
	}
}

func (m *mockUserRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	if m.CreateWithProfileFunc != nil {
		return m.CreateWithProfileFunc(ctx, user, profile)
	}
	if _, exists := m.users[user.Email]; exists {
		return apperrors.NewDuplicate("account", "email", nil)
	}
	m.users[user.Email] = user
	m.profiles[user.ID] = profile
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	user, ok := m.users[email]
	if !ok {
		return nil, apperrors.NewNotFound("account", nil)
	}
	return user, nil
}

func (m *mockUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	m.profileLookups++
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, apperrors.NewNotFound("profile", nil)
	}
	return profile, nil
}

var _ RevocationStore = (*fakeRevocationStore)(nil)

type fakeRevocationStore struct {
	keys      map[string]bool
	existsErr error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{keys: make(map[string]bool)}
}

func (f *fakeRevocationStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.keys[key] = true
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRevocationStore) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.existsErr != nil {
		return redis.NewIntResult(0, f.existsErr)
	}
	var n int64
	for _, k := range keys {
		if f.keys[k] {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestService(repo repository.UserRepository) *Service {
	return newTestServiceWithStore(repo, nil)
}

func newTestServiceWithStore(repo repository.UserRepository, store RevocationStore) *Service {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4) // min cost keeps the tests fast
	return NewService(repo, jwtSvc, hasher, store, time.Hour, nil)
}

func signUpHospital(t *testing.T, svc *Service) *model.TokenResponse {
	t.Helper()
	resp, err := svc.SignUp(context.Background(), &model.SignupRequest{
		Email:        "clinic@example.com",
		Password:     "hunter2hunter2",
		Role:         model.RoleHospital,
		FullName:     "Admin User",
		HospitalName: "General Hospital",
	})
	require.NoError(t, err)
	return resp
}

func TestSignUpIssuesTokenWithRole(t *testing.T) {
	svc := newTestService(newMockUserRepo())
	resp := signUpHospital(t, svc)

	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, model.RoleHospital, resp.Profile.Role)
	assert.Equal(t, "General Hospital", resp.Profile.HospitalName)

	claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "hospital", claims.Role)
}

func TestLoginRoleGate(t *testing.T) {
	svc := newTestService(newMockUserRepo())
	signUpHospital(t, svc)

	// Correct credentials, wrong role selection.
	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "clinic@example.com",
		Password: "hunter2hunter2",
		Role:     model.RoleDoctor,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err), "role mismatch must be a typed authorization failure")

	// Same credentials with the stored role succeed.
	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "clinic@example.com",
		Password: "hunter2hunter2",
		Role:     model.RoleHospital,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newMockUserRepo())
	signUpHospital(t, svc)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "clinic@example.com",
		Password: "wrong-password",
		Role:     model.RoleHospital,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
	assert.False(t, apperrors.IsForbidden(err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
		Role:     model.RoleDoctor,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

func TestDuplicateSignup(t *testing.T) {
	svc := newTestService(newMockUserRepo())
	signUpHospital(t, svc)

	_, err := svc.SignUp(context.Background(), &model.SignupRequest{
		Email:        "clinic@example.com",
		Password:     "hunter2hunter2",
		Role:         model.RoleHospital,
		FullName:     "Other User",
		HospitalName: "Other Hospital",
	})
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	store := newFakeRevocationStore()
	svc := newTestServiceWithStore(newMockUserRepo(), store)
	resp := signUpHospital(t, svc)

	_, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))

	_, err = svc.ValidateToken(context.Background(), resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

func TestRevocationCheckFailureKeepsTokenValid(t *testing.T) {
	store := newFakeRevocationStore()
	store.existsErr = errors.New("connection refused")
	svc := newTestServiceWithStore(newMockUserRepo(), store)
	resp := signUpHospital(t, svc)

	claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "hospital", claims.Role)
}

func TestProfileLookupsAreCached(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)
	resp := signUpHospital(t, svc)
	userID := resp.Profile.UserID

	repo.profileLookups = 0
	_, err := svc.Profile(context.Background(), userID)
	require.NoError(t, err)
	_, err = svc.Profile(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.profileLookups)
}
