package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Nimmmsh/digiCare/internal/models"
)

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	findByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	findByIDFunc       func(ctx context.Context, id int64) (*models.User, error)
	createFunc         func(ctx context.Context, user *models.User) error
	listAllFunc        func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func setupTestAuthService(t *testing.T) (*authService, *miniredis.Miniredis, *mockUserRepository) {
	t.Helper()

	redisClient, mr := setupTestRedis(t)
	tokens := NewTokenService(testSecret, testExpiry)
	if tokens == nil {
		t.Fatal("Failed to create token service")
	}
	mockRepo := &mockUserRepository{}

	service := NewAuthService(mockRepo, tokens, redisClient).(*authService)
	return service, mr, mockRepo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}

func doctorUser(t *testing.T, password string) *models.User {
	t.Helper()
	return &models.User{
		ID:           2,
		Username:     "dr_smith",
		FullName:     "Dr. Sarah Smith",
		Email:        "dr.smith@hospital.com",
		PasswordHash: hashPassword(t, password),
		RoleID:       2,
		Role:         models.Role{ID: 2, Name: models.RoleDoctor},
	}
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLogin_Success(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return doctorUser(t, "doctor123"), nil
	}

	result, err := service.Login(context.Background(), "dr_smith", "doctor123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Token == "" {
		t.Error("Login() should return a session token")
	}
	if result.Session.UserID != 2 {
		t.Errorf("Session.UserID = %d, want 2", result.Session.UserID)
	}
	if result.Session.Role != models.RoleDoctor {
		t.Errorf("Session.Role = %s, want %s", result.Session.Role, models.RoleDoctor)
	}
	if result.Session.FullName != "Dr. Sarah Smith" {
		t.Errorf("Session.FullName = %s, want Dr. Sarah Smith", result.Session.FullName)
	}
	if result.ExpiresIn <= 0 {
		t.Error("Login() should return positive expires_in")
	}

	// The session must be registered in Redis under its jti.
	claims, err := service.tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !mr.Exists("session:" + claims.ID) {
		t.Error("Login() should register the session in Redis")
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := service.Login(context.Background(), "nonexistent", "password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return doctorUser(t, "doctor123"), nil
	}

	_, err := service.Login(context.Background(), "dr_smith", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
	}
}

// Unknown usernames and wrong passwords must be indistinguishable, or the
// login form leaks which usernames exist.
func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		if username == "dr_smith" {
			return doctorUser(t, "doctor123"), nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	_, errUnknownUser := service.Login(context.Background(), "no_such_user", "doctor123")
	_, errBadPassword := service.Login(context.Background(), "dr_smith", "bad-password")

	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want %v", errUnknownUser, ErrInvalidCredentials)
	}
	if !errors.Is(errBadPassword, ErrInvalidCredentials) {
		t.Errorf("bad password error = %v, want %v", errBadPassword, ErrInvalidCredentials)
	}
	if errUnknownUser.Error() != errBadPassword.Error() {
		t.Errorf("failure messages differ: %q vs %q", errUnknownUser, errBadPassword)
	}
}

func TestLogin_EmptyMalformedHash(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		user := doctorUser(t, "doctor123")
		user.PasswordHash = "not-a-bcrypt-hash"
		return user, nil
	}

	_, err := service.Login(context.Background(), "dr_smith", "doctor123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want %v for malformed stored hash", err, ErrInvalidCredentials)
	}
}

func TestLogin_RedisFailure(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return doctorUser(t, "doctor123"), nil
	}

	mr.Close()

	if _, err := service.Login(context.Background(), "dr_smith", "doctor123"); err == nil {
		t.Error("Login() should fail when Redis is unavailable")
	}
}

// =============================================================================
// Authenticate Tests
// =============================================================================

func TestAuthenticate_LiveSession(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return doctorUser(t, "doctor123"), nil
	}

	result, err := service.Login(context.Background(), "dr_smith", "doctor123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	sess, err := service.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	if sess.UserID != 2 || sess.Role != models.RoleDoctor || sess.FullName != "Dr. Sarah Smith" {
		t.Errorf("Authenticate() session = %+v, want doctor session", sess)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	service, mr, _ := setupTestAuthService(t)
	defer mr.Close()

	if _, err := service.Authenticate(context.Background(), "invalid-token"); err == nil {
		t.Error("Authenticate() should fail for invalid token")
	}
}

func TestAuthenticate_UnregisteredSession(t *testing.T) {
	service, mr, _ := setupTestAuthService(t)
	defer mr.Close()

	// A validly signed token whose session was never registered.
	token, _, err := service.tokens.Generate(2, models.RoleDoctor, "Dr. Sarah Smith")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = service.Authenticate(context.Background(), token)
	if !errors.Is(err, ErrSessionRevoked) {
		t.Errorf("Authenticate() error = %v, want %v", err, ErrSessionRevoked)
	}
}

// =============================================================================
// Logout Tests
// =============================================================================

func TestLogout_RevokesSession(t *testing.T) {
	service, mr, mockRepo := setupTestAuthService(t)
	defer mr.Close()

	mockRepo.findByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return doctorUser(t, "doctor123"), nil
	}

	result, err := service.Login(context.Background(), "dr_smith", "doctor123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := service.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	// The still-valid token must no longer authenticate.
	_, err = service.Authenticate(context.Background(), result.Token)
	if !errors.Is(err, ErrSessionRevoked) {
		t.Errorf("Authenticate() after logout error = %v, want %v", err, ErrSessionRevoked)
	}
}

func TestLogout_InvalidToken(t *testing.T) {
	service, mr, _ := setupTestAuthService(t)
	defer mr.Close()

	if err := service.Logout(context.Background(), "invalid-token"); err == nil {
		t.Error("Logout() should fail for invalid token")
	}
}
