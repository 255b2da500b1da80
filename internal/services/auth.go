package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"estudia-backend/internal/models"
	"estudia-backend/internal/repository"
)

const (
	demoUsername = "bot"
	// bcrypt of the fixed demo password ("123"). The login screen is a
	// demo gate, not an authentication layer; no endpoint requires the
	// resulting token.
	demoPasswordHash = "$2b$10$x79rbaGeQhU.ySZhBQDUU.kLJd./AiydXzGEK2EyGiGCq2I5wr3yK"

	tokenTTL = 24 * time.Hour
)

// UnauthorizedError reports a failed credential check. Handlers map it
// to 401.
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type AuthService struct {
	users  *repository.UserRepo
	redis  *redis.Client
	secret []byte
}

func NewAuthService(users *repository.UserRepo, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{users: users, redis: redisClient, secret: []byte(jwtSecret)}
}

// Login checks the single fixed credential pair, ensures the demo user
// row exists, and issues a token recorded in Redis for its lifetime.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if req.Username == "" || req.Password == "" {
		return "", nil, &ValidationError{Message: "Username and password are required"}
	}

	if req.Username != demoUsername ||
		bcrypt.CompareHashAndPassword([]byte(demoPasswordHash), []byte(req.Password)) != nil {
		return "", nil, &UnauthorizedError{Message: "Credenciales inválidas"}
	}

	if err := s.users.Ensure(ctx, models.DemoUserID, models.DemoUserEmail, models.DemoUserName); err != nil {
		return "", nil, err
	}
	user, err := s.users.GetByID(ctx, models.DemoUserID)
	if err != nil {
		return "", nil, err
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	if err := s.redis.Set(ctx, "session:"+token, user.ID, tokenTTL).Err(); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout revokes an issued token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return &ValidationError{Message: "Token is required"}
	}
	return s.redis.Del(ctx, "session:"+token).Err()
}
