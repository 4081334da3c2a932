package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/repository"
	"github.com/medilink/records-api/pkg/auth"
	apperrors "github.com/medilink/records-api/pkg/errors"
	"github.com/medilink/records-api/pkg/metrics"
	"github.com/medilink/records-api/pkg/security"
)

const (
	profileCacheTTL     = 5 * time.Minute
	profileCacheCleanup = 10 * time.Minute
	revokedKeyPrefix    = "revoked_token:"
)

type AuthService interface {
	SignUp(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// RevocationStore is the subset of redis backing the token denylist.
type RevocationStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

type Service struct {
	userRepo    repository.UserRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	redisClient RevocationStore
	tokenExpiry time.Duration
	profiles    *gocache.Cache
	metrics     *metrics.Metrics
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher,
	redisClient RevocationStore, tokenExpiry time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		redisClient: redisClient,
		tokenExpiry: tokenExpiry,
		profiles:    gocache.New(profileCacheTTL, profileCacheCleanup),
		metrics:     m,
	}
}

// SignUp creates an account with its role fixed for the account's lifetime.
func (s *Service) SignUp(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewValidation("role must be hospital or doctor")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}
	profile := &model.Profile{
		UserID:   user.ID,
		Role:     req.Role,
		FullName: strings.TrimSpace(req.FullName),
	}
	switch req.Role {
	case model.RoleHospital:
		profile.HospitalName = strings.TrimSpace(req.HospitalName)
	case model.RoleDoctor:
		profile.DoctorLicense = strings.TrimSpace(req.DoctorLicense)
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Signups.WithLabelValues(string(req.Role)).Inc()
	}
	return s.issueToken(user, profile)
}

// Login authenticates the credentials, then applies the role gate: the
// stored profile role must match the role selected at login. A mismatch is
// a recoverable authorization failure, not a credential failure.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.countLogin("invalid_credentials")
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		s.countLogin("invalid_credentials")
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	profile, err := s.userRepo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.Role != req.Role {
		s.countLogin("role_mismatch")
		if s.metrics != nil {
			s.metrics.RoleMismatch.Inc()
		}
		return nil, apperrors.Forbidden("account role does not match the selected role")
	}

	s.countLogin("success")
	return s.issueToken(user, profile)
}

// Logout revokes the presented token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.redisClient == nil {
		return nil
	}
	err := s.redisClient.Set(ctx, revokedKeyPrefix+token, "1", s.tokenExpiry).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.metrics != nil {
		s.metrics.TokensRevoked.Inc()
	}
	return nil
}

// ValidateToken checks signature, expiry and the revocation list.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if s.redisClient != nil {
		revoked, err := s.redisClient.Exists(ctx, revokedKeyPrefix+token).Result()
		if err != nil {
			// The denylist is unavailable; the signed, unexpired token
			// stands. Revocation resumes when redis does.
			log.Warn().Err(err).Msg("failed to check token revocation")
		} else if revoked > 0 {
			return nil, apperrors.Unauthorized(fmt.Errorf("token revoked"))
		}
	}
	return claims, nil
}

// Profile loads the account profile, serving repeated lookups from a short
// TTL cache since every authenticated request needs it.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	if cached, ok := s.profiles.Get(userID.String()); ok {
		return cached.(*model.Profile), nil
	}

	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.profiles.Set(userID.String(), profile, gocache.DefaultExpiration)
	return profile, nil
}

func (s *Service) issueToken(user *model.User, profile *model.Profile) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Email, string(profile.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.tokenExpiry.Seconds()),
		Profile:     profile,
	}, nil
}

func (s *Service) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(outcome).Inc()
	}
}
