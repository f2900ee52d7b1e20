package users

import (
	"context"
	"errors"
	"fmt"

	"flightbook/internal/auth"
	"flightbook/internal/domain"
	"flightbook/internal/kafka"
	"flightbook/internal/metrics"
	"flightbook/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
	ListPending(ctx context.Context) ([]domain.User, error)
	Approve(ctx context.Context, id int64) (*domain.User, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type UserService struct {
	repo               repository.UserRepository
	tokens             *auth.TokenManager
	producer           Producer
	notificationsTopic string
	log                zerolog.Logger
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewUserService(
	repo repository.UserRepository,
	tokens *auth.TokenManager,
	producer Producer,
	notificationsTopic string,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:               repo,
		tokens:             tokens,
		producer:           producer,
		notificationsTopic: notificationsTopic,
		log:                log.With().Str("component", "users").Logger(),
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   string(hash),
		ApprovalStatus: domain.ApprovalStatusPending,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return auth.TokenPair{}, domain.ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.TokenPair{}, domain.ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	id, err := claims.UserID()
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidToken
		}
		return auth.TokenPair{}, err
	}
	return s.tokens.IssuePair(user)
}

func (s *UserService) ListPending(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListPending(ctx)
}

// Approve transitions the user to approved. Approving an already-approved
// account is a no-op. A fresh approval publishes an account-approved
// notification; a publish failure is logged and the approval still succeeds.
func (s *UserService) Approve(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ApprovalStatus == domain.ApprovalStatusApproved {
		return user, nil
	}

	updated, err := s.repo.UpdateApprovalStatus(ctx, id, domain.ApprovalStatusApproved)
	if err != nil {
		return nil, err
	}

	if s.producer != nil && s.notificationsTopic != "" {
		event := kafka.NotificationEvent{
			Type:     kafka.EventAccountApproved,
			Username: updated.Username,
			Email:    updated.Email,
		}
		if err := s.producer.Publish(ctx, s.notificationsTopic, updated.Username, event); err != nil {
			s.log.Warn().Err(err).Str("username", updated.Username).Msg("failed to publish approval notification")
		} else {
			metrics.NotificationsPublished.Inc()
		}
	}

	return updated, nil
}

var _ UserUseCase = (*UserService)(nil)
