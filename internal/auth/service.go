package auth

import (
	"context"

	"github.com/Harsh-kumar-git/ManageMate/internal/metrics"
	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/internal/store"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/sirupsen/logrus"
)

// credentialsMessage is deliberately identical for an unknown email and a
// wrong password, so login responses cannot be used to enumerate users.
const credentialsMessage = "Incorrect email or password"

// Service orchestrates registration and login. It is the only component
// that mints tokens.
type Service struct {
	users  store.UserRepository
	hasher PasswordHasher
	tokens *TokenService
	logger *logrus.Logger
}

// NewService creates the auth service
func NewService(users store.UserRepository, hasher PasswordHasher, tokens *TokenService, logger *logrus.Logger) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user and issues its first token.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Please provide name, email and password", nil)
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		metrics.RecordAuthAttempt("register", "failure")
		return nil, apperr.Duplicate("Email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		metrics.RecordAuthAttempt("register", "failure")
		return nil, err
	}

	token, expiresIn, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("register", "success")
	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
	}).Info("User registered")

	return &models.AuthResponse{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

// Login verifies credentials and issues a fresh token. A missing user and
// a password mismatch fail identically.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Please provide email and password", nil)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			metrics.RecordAuthAttempt("login", "failure")
			s.logger.WithField("email", req.Email).Warn("Login attempt for unknown email")
			return nil, apperr.Authentication(credentialsMessage)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		metrics.RecordAuthAttempt("login", "failure")
		s.logger.WithField("user_id", user.ID.Hex()).Warn("Login attempt with wrong password")
		return nil, apperr.Authentication(credentialsMessage)
	}

	token, expiresIn, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("login", "success")
	s.logger.WithField("user_id", user.ID.Hex()).Info("User logged in")

	return &models.AuthResponse{User: user, Token: token, ExpiresIn: expiresIn}, nil
}
