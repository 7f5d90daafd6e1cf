package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sportconnect/sportconnect-api/internal/cache"
	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

const leaderboardCacheKey = "leaderboard"

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindTopByPoints(ctx context.Context, limit int) ([]domain.User, error)
	UpdatePoints(ctx context.Context, id uint, delta int) (int, error)
	ResetPoints(ctx context.Context, id uint) error
	SetAdmin(ctx context.Context, id uint, isAdmin bool) error
	Delete(ctx context.Context, id uint) error
}

type UserEventCounter interface {
	CountOrganized(ctx context.Context, userID uint) (int, error)
	CountJoined(ctx context.Context, userID uint) (int, error)
}

// Profile is a user decorated with the derived gamification state.
type Profile struct {
	User      domain.User  `json:"user"`
	Level     domain.Level `json:"level"`
	Initials  string       `json:"initials"`
	Organized int          `json:"organized_events"`
	Joined    int          `json:"joined_events"`
}

type UserService struct {
	repo           UserRepository
	events         UserEventCounter
	cache          *cache.Cache
	leaderboardTTL time.Duration
}

func NewUserService(repo UserRepository, events UserEventCounter, c *cache.Cache, leaderboardTTL time.Duration) *UserService {
	return &UserService{
		repo:           repo,
		events:         events,
		cache:          c,
		leaderboardTTL: leaderboardTTL,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	organized, err := s.events.CountOrganized(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("s.events.CountOrganized -> %w", err)
	}

	joined, err := s.events.CountJoined(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("s.events.CountJoined -> %w", err)
	}

	return Profile{
		User:      user,
		Level:     user.Level(),
		Initials:  user.Initials(),
		Organized: organized,
		Joined:    joined,
	}, nil
}

// ApplyPointsDelta mutates the stored balance by a clamped delta and returns
// the result, so callers can report it without a second read.
func (s *UserService) ApplyPointsDelta(ctx context.Context, userID uint, delta int) (int, error) {
	balance, err := s.repo.UpdatePoints(ctx, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("s.repo.UpdatePoints -> %w", err)
	}

	return balance, nil
}

// ResetPoints forces the balance to exactly zero. Direct set, not a delta.
func (s *UserService) ResetPoints(ctx context.Context, userID uint) error {
	if err := s.repo.ResetPoints(ctx, userID); err != nil {
		return fmt.Errorf("s.repo.ResetPoints -> %w", err)
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// Leaderboard returns the top users by points, cached for a short TTL.
// Cache failures degrade to the database, they never fail the request.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]domain.User, error) {
	key := fmt.Sprintf("%v:%d", leaderboardCacheKey, limit)

	var cached []domain.User
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		zap.L().Warn("leaderboard cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	users, err := s.repo.FindTopByPoints(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTopByPoints -> %w", err)
	}

	if err = s.cache.Set(ctx, key, users, s.leaderboardTTL); err != nil {
		zap.L().Warn("leaderboard cache write failed", zap.Error(err))
	}

	return users, nil
}

// SetAdmin grants or revokes the admin flag. Guarded by the admin policy:
// an admin can never change their own account.
func (s *UserService) SetAdmin(ctx context.Context, actor domain.User, targetID uint, isAdmin bool) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !CanModifyAdmin(actor, target) {
		return ErrSelfAdminChange
	}

	if err = s.repo.SetAdmin(ctx, targetID, isAdmin); err != nil {
		return fmt.Errorf("s.repo.SetAdmin -> %w", err)
	}

	return nil
}

// DeleteUser removes an account. Participations and messages go with it;
// organized events are cancelled, not deleted.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.User, targetID uint) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !CanModifyAdmin(actor, target) {
		return ErrSelfAdminChange
	}

	if err = s.repo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
