package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"user-api/internal/data/entity"
	"user-api/pkg/apperror"

	"github.com/google/uuid"
)

// memoryUserRepo is an in-memory UserRepository with the same contract as the
// Postgres one: (nil, nil) on missing lookups, typed errors on mutations.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	clock time.Time

	lastLoginCalls int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users: make(map[uuid.UUID]*entity.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryUserRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func clone(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := entity.NormalizeEmail(user.Email)
	for _, existing := range r.users {
		if existing.Email == email {
			return nil, apperror.Conflict("User with this email already exists")
		}
	}

	now := r.tick()
	created := clone(user)
	created.ID = uuid.New()
	created.Email = email
	created.IsActive = true
	created.CreatedAt = now
	created.UpdatedAt = now
	r.users[created.ID] = created
	return clone(created), nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = entity.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) ListPage(_ context.Context, page, limit int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, clone(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := (page - 1) * limit
	if start >= len(all) {
		return []*entity.User{}, int64(len(all)), nil
	}
	end := min(start+limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *memoryUserRepo) Update(_ context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}

	if update.Email != nil {
		email := entity.NormalizeEmail(*update.Email)
		for otherID, other := range r.users {
			if otherID != id && other.Email == email {
				return nil, apperror.Conflict("User with this email already exists")
			}
		}
		u.Email = email
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.IsActive != nil {
		u.IsActive = *update.IsActive
	}
	u.UpdatedAt = r.tick()
	return clone(u), nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("User not found")
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperror.NotFound("User not found")
	}
	now := r.tick()
	u.LastLoginAt = &now
	r.lastLoginCalls++
	return nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperror.NotFound("User not found")
	}
	u.PasswordHash = hash
	u.UpdatedAt = r.tick()
	return nil
}

func (r *memoryUserRepo) VerifyEmail(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperror.NotFound("User not found")
	}
	u.EmailVerified = true
	u.UpdatedAt = r.tick()
	return nil
}

// setActive flips the flag behind the services' back, as another admin would.
func (r *memoryUserRepo) setActive(id uuid.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].IsActive = active
}
