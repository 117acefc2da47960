package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"rawkart/internal/model"
	"rawkart/internal/repository"
	"rawkart/internal/utils"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	args := m.Called(ctx, mobile)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindSupplierByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func setupAuthTest(t *testing.T) (*MockUserRepository, AuthService, *utils.JWTManager) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	userRepo := new(MockUserRepository)
	jwtManager := utils.NewJWTManager("test-secret", "rawkart", 2*time.Hour)
	service := NewAuthService(userRepo, jwtManager, redisClient)

	return userRepo, service, jwtManager
}

func TestAuthService_Register(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	userRepo.On("ExistsByMobile", mock.Anything, "9876543210").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Ravi" && u.Role == model.RoleVendor && u.PasswordHash != "secret123"
	})).Return(nil)

	user, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Ravi",
		Mobile:   "9876543210",
		Password: "secret123",
		Role:     "vendor",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateMobile(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	userRepo.On("ExistsByMobile", mock.Anything, "9876543210").Return(true, nil)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Ravi",
		Mobile:   "9876543210",
		Password: "secret123",
		Role:     "vendor",
	})

	assert.Error(t, err)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(&model.User{
		ID:           7,
		Name:         "Sita",
		Mobile:       "9876543210",
		PasswordHash: string(hash),
		Role:         model.RoleSupplier,
	}, nil)

	resp, err := service.Login(context.Background(), &LoginRequest{
		Mobile:   "9876543210",
		Password: "secret123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7200), resp.ExpiresIn)

	claims, err := service.ValidateToken(context.Background(), resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "Sita", claims.Name)
	assert.Equal(t, model.RoleSupplier, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(&model.User{
		ID:           7,
		PasswordHash: string(hash),
	}, nil)

	_, err := service.Login(context.Background(), &LoginRequest{
		Mobile:   "9876543210",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestAuthService_Login_UnknownMobile(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	userRepo.On("GetByMobile", mock.Anything, "0000000000").Return(nil, repository.ErrNotFound)

	_, err := service.Login(context.Background(), &LoginRequest{
		Mobile:   "0000000000",
		Password: "secret123",
	})
	assert.Error(t, err)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	_, service, jwtManager := setupAuthTest(t)

	token, err := jwtManager.GenerateToken(7, "Sita", model.RoleSupplier)
	assert.NoError(t, err)

	// Valid before logout
	_, err = service.ValidateToken(context.Background(), token)
	assert.NoError(t, err)

	assert.NoError(t, service.Logout(context.Background(), token))

	// Revoked after logout
	_, err = service.ValidateToken(context.Background(), token)
	assert.Error(t, err)
}

func TestAuthService_Logout_InvalidTokenIsNoOp(t *testing.T) {
	_, service, _ := setupAuthTest(t)
	assert.NoError(t, service.Logout(context.Background(), "not-a-token"))
}

func TestAuthService_SearchSupplier(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	userRepo.On("FindSupplierByName", mock.Anything, "Sita").Return(&model.User{
		ID:   7,
		Name: "Sita Traders",
		Role: model.RoleSupplier,
	}, nil)

	supplier, err := service.SearchSupplier(context.Background(), "Sita")
	assert.NoError(t, err)
	assert.Equal(t, "Sita Traders", supplier.Name)
}

func TestAuthService_SearchSupplier_NotFound(t *testing.T) {
	userRepo, service, _ := setupAuthTest(t)

	userRepo.On("FindSupplierByName", mock.Anything, "Nobody").Return(nil, repository.ErrNotFound)

	_, err := service.SearchSupplier(context.Background(), "Nobody")
	assert.Error(t, err)
}
