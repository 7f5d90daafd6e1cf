package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository"
)

type fakeUserRepo struct {
	users map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}

	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}

	return result, nil
}

func (r *fakeUserRepo) FindTopByPoints(_ context.Context, limit int) ([]domain.User, error) {
	all, _ := r.FindAll(context.Background())
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].Points > all[i].Points {
				all[i], all[j] = all[j], all[i]
			}
		}
	}

	if limit < len(all) {
		all = all[:limit]
	}

	return all, nil
}

func (r *fakeUserRepo) UpdatePoints(_ context.Context, id uint, delta int) (int, error) {
	user, ok := r.users[id]
	if !ok {
		return 0, repository.ErrUserNotFound
	}

	user.Points = domain.ApplyDelta(user.Points, delta)
	r.users[id] = user

	return user.Points, nil
}

func (r *fakeUserRepo) ResetPoints(_ context.Context, id uint) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.Points = 0
	r.users[id] = user

	return nil
}

func (r *fakeUserRepo) SetAdmin(_ context.Context, id uint, isAdmin bool) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.IsAdmin = isAdmin
	r.users[id] = user

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	delete(r.users, id)

	return nil
}

type fakeEventCounter struct {
	organized int
	joined    int
}

func (c *fakeEventCounter) CountOrganized(_ context.Context, _ uint) (int, error) {
	return c.organized, nil
}

func (c *fakeEventCounter) CountJoined(_ context.Context, _ uint) (int, error) {
	return c.joined, nil
}

func newTestUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, &fakeEventCounter{organized: 2, joined: 5}, nil, time.Minute)
}

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo(domain.User{ID: 1, Username: "marie", Points: 150})
	svc := newTestUserService(repo)

	profile, err := svc.GetProfile(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "marie", profile.User.Username)
	assert.Equal(t, "Explorer", profile.Level.Name)
	assert.Equal(t, "MA", profile.Initials)
	assert.Equal(t, 2, profile.Organized)
	assert.Equal(t, 5, profile.Joined)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.GetProfile(context.Background(), 42)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestApplyPointsDelta(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		delta   int
		want    int
	}{
		{"credit", 100, 50, 150},
		{"debit", 100, -10, 90},
		{"debit below zero clamps", 5, -10, 0},
		{"zero balance stays zero", 0, -10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepo(domain.User{ID: 1, Points: tc.points})
			svc := newTestUserService(repo)

			balance, err := svc.ApplyPointsDelta(context.Background(), 1, tc.delta)

			require.NoError(t, err)
			assert.Equal(t, tc.want, balance)
		})
	}
}

func TestResetPoints(t *testing.T) {
	repo := newFakeUserRepo(domain.User{ID: 1, Points: 731})
	svc := newTestUserService(repo)

	err := svc.ResetPoints(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 0, repo.users[1].Points)
}

func TestLeaderboard_NoCache(t *testing.T) {
	repo := newFakeUserRepo(
		domain.User{ID: 1, Username: "a", Points: 10},
		domain.User{ID: 2, Username: "b", Points: 300},
		domain.User{ID: 3, Username: "c", Points: 70},
	)
	svc := newTestUserService(repo)

	top, err := svc.Leaderboard(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Username)
	assert.Equal(t, "c", top[1].Username)
}

func TestSetAdmin(t *testing.T) {
	repo := newFakeUserRepo(
		domain.User{ID: 1, IsAdmin: true},
		domain.User{ID: 2},
	)
	svc := newTestUserService(repo)

	err := svc.SetAdmin(context.Background(), repo.users[1], 2, true)

	require.NoError(t, err)
	assert.True(t, repo.users[2].IsAdmin)
}

func TestSetAdmin_Self(t *testing.T) {
	repo := newFakeUserRepo(domain.User{ID: 1, IsAdmin: true})
	svc := newTestUserService(repo)

	err := svc.SetAdmin(context.Background(), repo.users[1], 1, false)

	assert.ErrorIs(t, err, ErrSelfAdminChange)
	assert.True(t, repo.users[1].IsAdmin)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo(
		domain.User{ID: 1, IsAdmin: true},
		domain.User{ID: 2},
	)
	svc := newTestUserService(repo)

	err := svc.DeleteUser(context.Background(), repo.users[1], 2)

	require.NoError(t, err)
	assert.NotContains(t, repo.users, uint(2))
}

func TestDeleteUser_Self(t *testing.T) {
	repo := newFakeUserRepo(domain.User{ID: 1, IsAdmin: true})
	svc := newTestUserService(repo)

	err := svc.DeleteUser(context.Background(), repo.users[1], 1)

	assert.ErrorIs(t, err, ErrSelfAdminChange)
	assert.Contains(t, repo.users, uint(1))
}

func TestCanModifyAdmin(t *testing.T) {
	admin := domain.User{ID: 1, IsAdmin: true}
	other := domain.User{ID: 2}

	assert.True(t, CanModifyAdmin(admin, other))
	assert.False(t, CanModifyAdmin(admin, admin))
	assert.False(t, CanModifyAdmin(other, admin))
}
