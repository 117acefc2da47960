package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"rawkart/internal/model"
	"rawkart/internal/repository"
	"rawkart/internal/utils"
	"rawkart/pkg/log"
)

const blacklistKeyPrefix = "auth:blacklist:"

// RegisterRequest register request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Mobile   string `json:"mobile" binding:"required,min=10,max=15"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"required,oneof=vendor supplier"`
}

// LoginRequest login request
type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse token response
type TokenResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      *model.User `json:"user"`
}

// AuthService authentication service interface
type AuthService interface {
	// Register user
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)

	// Login user
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)

	// Logout user, invalidating the presented token
	Logout(ctx context.Context, token string) error

	// Validate token
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	// Find a supplier by name
	SearchSupplier(ctx context.Context, name string) (*model.User, error)
}

// authService authentication service implementation
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	redis      *redis.Client
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	redisClient *redis.Client,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		redis:      redisClient,
	}
}

// Register registers a user
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByMobile(ctx, req.Mobile)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Check mobile failed")
		return nil, errors.New("system error")
	}
	if exists {
		return nil, errors.New("user with this mobile number already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Hash password failed")
		return nil, errors.New("system error")
	}

	user := &model.User{
		Name:         req.Name,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Create user failed")
		return nil, errors.New("registration failed")
	}

	log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")
	return user, nil
}

// Login logs in a user
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.New("invalid credentials")
		}
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Load user failed")
		return nil, errors.New("system error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Generate token failed")
		return nil, errors.New("system error")
	}

	log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")

	return &TokenResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.Expire() / time.Second),
		User:      user,
	}, nil
}

// Logout invalidates the presented token until its natural expiry
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		// Already invalid; nothing to revoke
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err(); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Blacklist token failed")
		return errors.New("logout failed")
	}
	return nil
}

// ValidateToken validates a token and rejects blacklisted ones
func (s *authService) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	n, err := s.redis.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		// Redis trouble must not lock every user out
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("Blacklist check failed, accepting token")
		return claims, nil
	}
	if n > 0 {
		return nil, errors.New("token revoked")
	}

	return claims, nil
}

// SearchSupplier finds a supplier by name
func (s *authService) SearchSupplier(ctx context.Context, name string) (*model.User, error) {
	user, err := s.userRepo.FindSupplierByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.New("supplier not found")
		}
		return nil, err
	}
	return user, nil
}
