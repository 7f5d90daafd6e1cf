package repository

import (
	"context"
	"fmt"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository/dao"
)

var (
	ErrUsernameExists = dao.ErrUsernameExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	FindTopByPoints(ctx context.Context, limit int) ([]dao.User, error)
	UpdatePoints(ctx context.Context, id uint, delta int) (int, error)
	ResetPoints(ctx context.Context, id uint) error
	SetAdmin(ctx context.Context, id uint, isAdmin bool) error
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username:     user.Username,
		PasswordHash: user.Password,
		Email:        user.Email,
		AvatarColor:  user.AvatarColor,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDaoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, userDaoToDomain(u))
	}

	return users, nil
}

func (r *UserRepository) FindTopByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	found, err := r.dao.FindTopByPoints(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTopByPoints -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, userDaoToDomain(u))
	}

	return users, nil
}

func (r *UserRepository) UpdatePoints(ctx context.Context, id uint, delta int) (int, error) {
	balance, err := r.dao.UpdatePoints(ctx, id, delta)
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdatePoints -> %w", err)
	}

	return balance, nil
}

func (r *UserRepository) ResetPoints(ctx context.Context, id uint) error {
	if err := r.dao.ResetPoints(ctx, id); err != nil {
		return fmt.Errorf("r.dao.ResetPoints -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	if err := r.dao.SetAdmin(ctx, id, isAdmin); err != nil {
		return fmt.Errorf("r.dao.SetAdmin -> %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.PasswordHash,
		Points:      u.Points,
		AvatarColor: u.AvatarColor,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
