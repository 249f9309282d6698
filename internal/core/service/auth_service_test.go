package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/error-monitor/internal/core/domain"
	"github.com/99minutos/error-monitor/internal/core/ports"
)

type stubAuthRepo struct {
	users     map[string]*domain.User // keyed by email
	findErr   error
	lastLogin map[string]time.Time
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		users:     make(map[string]*domain.User),
		lastLogin: make(map[string]time.Time),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "u-" + strconv.Itoa(len(r.users)+1)
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.lastLogin[id] = at
	return nil
}

func (r *stubAuthRepo) SetActive(_ context.Context, id string, active bool) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Active = active
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubTokenCache struct {
	entries map[string]*domain.User
	gets    int
}

func (c *stubTokenCache) Get(_ context.Context, token string) (*domain.User, error) {
	c.gets++
	return cloneUser(c.entries[token]), nil
}

func (c *stubTokenCache) Set(_ context.Context, token string, user *domain.User) error {
	c.entries[token] = cloneUser(user)
	return nil
}

func newAuthSvc(repo ports.AuthRepository) *AuthService {
	return NewAuthService(repo, AuthOptions{JWTSecret: "secret", BcryptCost: bcrypt.MinCost}, zerolog.Nop())
}

var demoInput = ports.RegisterInput{
	Email:     "Demo@X.com",
	Password:  "Demo123!",
	FirstName: "Demo",
	LastName:  "User",
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo)

	token, user, err := svc.Register(context.Background(), demoInput)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Email != "demo@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser || !user.Active {
		t.Fatalf("unexpected role/active: %s %v", user.Role, user.Active)
	}
	if user.PasswordHash == demoInput.Password {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(demoInput.Password)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	cases := map[string]ports.RegisterInput{
		"bad email":     {Email: "not-an-email", Password: "Demo123!", FirstName: "a", LastName: "b"},
		"weak password": {Email: "a@x.com", Password: "password", FirstName: "a", LastName: "b"},
		"short":         {Email: "a@x.com", Password: "De1!", FirstName: "a", LastName: "b"},
		"missing name":  {Email: "a@x.com", Password: "Demo123!"},
	}
	for name, in := range cases {
		if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestAuthService_Register_DuplicateIsCaseInsensitive(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	if _, _, err := svc.Register(context.Background(), demoInput); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	again := demoInput
	again.Email = "DEMO@x.COM"
	if _, _, err := svc.Register(context.Background(), again); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo)

	if _, _, err := svc.Register(context.Background(), demoInput); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "demo@x.com", "Demo123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected token and user")
	}
	if _, ok := repo.lastLogin[user.ID]; !ok {
		t.Fatalf("expected last login to be recorded")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "demo@x.com" || claims.Role != string(domain.RoleUser) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != DefaultTokenTTL {
		t.Fatalf("expected 7 day expiry, got %v", ttl)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	_, _, _ = svc.Register(context.Background(), demoInput)
	if _, _, err := svc.Login(context.Background(), "demo@x.com", "Wrong123!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "Demo123!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo)

	_, user, _ := svc.Register(context.Background(), demoInput)
	_ = repo.SetActive(context.Background(), user.ID, false)

	if _, _, err := svc.Login(context.Background(), "demo@x.com", "Demo123!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_FailuresPayOneHash(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo)

	_, inactive, _ := svc.Register(context.Background(), ports.RegisterInput{
		Email: "off@x.com", Password: "Demo123!", FirstName: "Off", LastName: "User",
	})
	_ = repo.SetActive(context.Background(), inactive.ID, false)
	_, _, _ = svc.Register(context.Background(), demoInput)

	calls := 0
	svc.compare = func(hash, password []byte) error {
		calls++
		if len(hash) == 0 {
			t.Errorf("compared against an empty hash")
		}
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	cases := []struct {
		name, email, password string
	}{
		{"unknown email", "ghost@x.com", "Demo123!"},
		{"inactive user", "off@x.com", "Demo123!"},
		{"wrong password", "demo@x.com", "Wrong123!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls = 0
			if _, _, err := svc.Login(context.Background(), tc.email, tc.password); err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if calls != 1 {
				t.Fatalf("expected exactly one hash comparison, got %d", calls)
			}
		})
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errors.New("db unavailable")
	svc := newAuthSvc(repo)

	_, _, err := svc.Login(context.Background(), "demo@x.com", "Demo123!")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuthService_VerifyToken_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	token, registered, _ := svc.Register(context.Background(), demoInput)
	user, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_VerifyToken_DeactivatedUser(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo)

	token, user, _ := svc.Register(context.Background(), demoInput)
	if _, err := svc.VerifyToken(context.Background(), token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	_ = repo.SetActive(context.Background(), user.ID, false)
	if _, err := svc.VerifyToken(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after deactivation, got %v", err)
	}
}

func TestAuthService_VerifyToken_DeletedUser(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(repo)

	token, _, _ := svc.Register(context.Background(), demoInput)
	repo.users = map[string]*domain.User{}

	if _, err := svc.VerifyToken(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_VerifyToken_Rejects(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	_, user, _ := svc.Register(context.Background(), demoInput)

	expired := NewAuthService(newStubAuthRepo(), AuthOptions{JWTSecret: "secret", BcryptCost: bcrypt.MinCost}, zerolog.Nop())
	expired.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	expiredToken, _ := expired.IssueToken(user)

	otherKey := NewAuthService(newStubAuthRepo(), AuthOptions{JWTSecret: "other", BcryptCost: bcrypt.MinCost}, zerolog.Nop())
	foreignToken, _ := otherKey.IssueToken(user)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: user.ID}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, token := range map[string]string{
		"garbage":   "not-a-token",
		"expired":   expiredToken,
		"wrong key": foreignToken,
		"alg none":  noneToken,
	} {
		if _, err := svc.VerifyToken(context.Background(), token); err != domain.ErrInvalidToken {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestAuthService_VerifyToken_UsesCache(t *testing.T) {
	repo := newStubAuthRepo()
	cache := &stubTokenCache{entries: map[string]*domain.User{}}
	svc := NewAuthService(repo, AuthOptions{JWTSecret: "secret", BcryptCost: bcrypt.MinCost, Cache: cache}, zerolog.Nop())

	token, _, _ := svc.Register(context.Background(), demoInput)
	if _, err := svc.VerifyToken(context.Background(), token); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if _, ok := cache.entries[token]; !ok {
		t.Fatalf("expected verified user to be cached")
	}

	repo.findErr = errors.New("db unavailable")
	if _, err := svc.VerifyToken(context.Background(), token); err != nil {
		t.Fatalf("expected cached verification, got %v", err)
	}
	if cache.gets != 2 {
		t.Fatalf("expected 2 cache reads, got %d", cache.gets)
	}
}
