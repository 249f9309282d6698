package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/error-monitor/internal/core/domain"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// DefaultBcryptCost keeps a single hash verification in the 100ms+ range.
const DefaultBcryptCost = 12

// dummyPassword is hashed once per service so failed lookups pay the same
// bcrypt cost as a wrong password.
const dummyPassword = "error-monitor-unknown-account"

// AuthOptions configures token signing and password hashing.
type AuthOptions struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	// Cache is optional; nil disables verification caching.
	Cache ports.TokenCache
}

// Claims is the signed payload of a session token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo       ports.AuthRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	cache      ports.TokenCache
	validate   *validator.Validate
	now        func() time.Time
	compare    func(hash, password []byte) error
	log        zerolog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(repo ports.AuthRepository, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = DefaultBcryptCost
	}
	return &AuthService{
		repo:       repo,
		jwtSecret:  []byte(opts.JWTSecret),
		tokenTTL:   opts.TokenTTL,
		bcryptCost: opts.BcryptCost,
		cache:      opts.Cache,
		validate:   validator.New(),
		now:        func() time.Time { return time.Now().UTC() },
		compare:    bcrypt.CompareHashAndPassword,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", nil, domain.NewValidationError("email", "email must be a valid email")
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return "", nil, err
	}
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return "", nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "firstName", Message: "firstName and lastName are required"},
		}}
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnHash(password)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !user.Active {
		s.burnHash(password)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.compare([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, fmt.Errorf("login: update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// burnHash runs one comparison against a dummy hash and discards the result.
func (s *AuthService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), s.bcryptCost)
		if err != nil {
			s.log.Warn().Err(err).Msg("dummy hash generation failed")
			return
		}
		s.dummyHash = h
	})
	_ = s.compare(s.dummyHash, []byte(password))
}

// IssueToken signs {userId, email, role} with an expiry of now + token TTL.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry, then re-reads the user so a
// deactivated account is rejected on its next request.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	if s.cache != nil {
		if u, cErr := s.cache.Get(ctx, token); cErr != nil {
			s.log.Warn().Err(cErr).Msg("token cache read failed")
		} else if u != nil {
			return u, nil
		}
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if !user.Active {
		return nil, domain.ErrInvalidToken
	}

	if s.cache != nil {
		if cErr := s.cache.Set(ctx, token, user); cErr != nil {
			s.log.Warn().Err(cErr).Msg("token cache write failed")
		}
	}
	return user, nil
}
