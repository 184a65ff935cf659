package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
	appErr "github.com/vendoreval/engine/pkg/errors"
	"github.com/vendoreval/engine/pkg/logger"
	"go.uber.org/zap"
)

// RegistrationPolicy controls who may self-register. It is fixed at
// construction time, never mutated afterwards.
type RegistrationPolicy string

const (
	// PolicyFirstUserOnly allows exactly one registration ever.
	PolicyFirstUserOnly RegistrationPolicy = "first_user_only"
	// PolicySingleAdmin allows unlimited analyst registrations but at most
	// one admin ever.
	PolicySingleAdmin RegistrationPolicy = "single_admin"
)

// ParseRegistrationPolicy maps a config string to a policy.
func ParseRegistrationPolicy(s string) (RegistrationPolicy, error) {
	switch RegistrationPolicy(s) {
	case PolicyFirstUserOnly, PolicySingleAdmin:
		return RegistrationPolicy(s), nil
	}
	return "", fmt.Errorf("unknown registration policy %q", s)
}

type AuthService interface {
	Register(ctx context.Context, email, password string, role models.Role) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	// VerifyToken validates signature and expiry and returns the embedded
	// subject. Every failure mode surfaces as the same Unauthorized error.
	VerifyToken(token string) (string, error)
}

// AuthOptions configures token issuance and the registration policy.
type AuthOptions struct {
	Secret    []byte
	Algorithm string // HS256, HS384 or HS512
	TokenTTL  time.Duration
	Policy    RegistrationPolicy
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	method     *jwt.SigningMethodHMAC
	tokenTTL   time.Duration
	policy     RegistrationPolicy
}

var _ AuthService = (*authService)(nil)

func NewAuthService(users repository.UserRepository, opts AuthOptions) (AuthService, error) {
	var method *jwt.SigningMethodHMAC
	switch opts.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", opts.Algorithm)
	}
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicySingleAdmin
	}
	return &authService{
		users:      users,
		hmacSecret: opts.Secret,
		method:     method,
		tokenTTL:   ttl,
		policy:     policy,
	}, nil
}

func (s *authService) Register(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleAnalyst
	}
	if !role.Valid() {
		return nil, appErr.New(appErr.CodeInvalid, "role must be admin or analyst")
	}

	if err := s.checkPolicy(ctx, role); err != nil {
		return nil, err
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(ph),
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.New(appErr.CodeConflict, "email already registered")
		}
		return nil, err
	}

	logger.L().Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return user, nil
}

// checkPolicy gates registration. The counts race with concurrent
// registrations; the email uniqueness constraint still holds, and both
// attested policies tolerate an off-by-one under that race.
func (s *authService) checkPolicy(ctx context.Context, role models.Role) error {
	switch s.policy {
	case PolicyFirstUserOnly:
		n, err := s.users.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return appErr.New(appErr.CodeForbidden, "registration disabled")
		}
	case PolicySingleAdmin:
		if role != models.RoleAdmin {
			return nil
		}
		n, err := s.users.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
		if n > 0 {
			return appErr.New(appErr.CodeForbidden, "an admin account already exists")
		}
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		// Same response whether the email exists or not.
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}

	logger.L().Info("user logged in", zap.String("user_id", user.ID.String()))
	return signed, &user, nil
}

func (s *authService) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.hmacSecret, nil
	})
	if err != nil || !token.Valid {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid token")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", appErr.New(appErr.CodeUnauthorized, "invalid token")
	}
	return sub, nil
}
