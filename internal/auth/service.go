package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/users"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const TokenTypeBearer = "bearer"

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Registry is the part of users.Registry the auth service depends on.
type Registry interface {
	CreateUser(ctx context.Context, userID, passwordHash string) (*users.User, error)
	GetUser(ctx context.Context, userID string) (*users.User, error)
}

type Service struct {
	users     Registry
	jwtSecret []byte
	accessTTL time.Duration
	hashCost  int
	logger    logging.Logger
}

func NewService(users Registry, secret string, accessTTL time.Duration, logger logging.Logger) *Service {
	return &Service{
		users:     users,
		jwtSecret: []byte(secret),
		accessTTL: accessTTL,
		hashCost:  bcrypt.DefaultCost,
		logger:    logger.With("module", "auth"),
	}
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issue(userID string) (*Token, error) {
	token, err := GenerateToken(userID, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Token{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// Register creates the user account without issuing a token.
func (s *Service) Register(ctx context.Context, userID, password string) (*users.User, error) {
	if userID == "" || password == "" {
		return nil, fmt.Errorf("%w: user id and password are required", common.ErrorInvalidArgument)
	}

	hash, err := HashPassword(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInvalidArgument, err)
	}

	return s.users.CreateUser(ctx, userID, hash)
}

// Signup registers a new user and logs them in.
func (s *Service) Signup(ctx context.Context, userID, password string) (*Token, error) {
	user, err := s.Register(ctx, userID, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user signed up", "user_id", user.UserID)
	return s.issue(user.UserID)
}

// Login checks the password of userID. Unknown users and wrong passwords
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, userID, password string) (*Token, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(user.UserID)
}

// Resolve returns the user id an access token was issued for.
func (s *Service) Resolve(token string) (string, error) {
	userID, err := GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return userID, nil
}

type usersFile struct {
	Users []struct {
		UserID   string `yaml:"user_id"`
		Password string `yaml:"password"`
	} `yaml:"users"`
}

// SeedFromFile creates the users listed in a YAML file. Users that already
// exist are left alone. It returns the number of users created.
func (s *Service) SeedFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return 0, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}

	created := 0
	for _, u := range uf.Users {
		if u.UserID == "" || u.Password == "" {
			s.logger.Warn(ctx, "skipping incomplete seed user", "user_id", u.UserID)
			continue
		}
		if _, err := s.users.GetUser(ctx, u.UserID); err == nil {
			continue
		} else if !errors.Is(err, common.ErrorNotFound) {
			return created, err
		}
		if _, err := s.Register(ctx, u.UserID, u.Password); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info(ctx, "users seeded", "path", path, "created", created)
	return created, nil
}
