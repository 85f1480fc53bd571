package repository

import (
	"context"
	"sync"
	"time"

	"disasterreport/model"
)

// UserRepository is the user directory, keyed by mobile number.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByMobile(ctx context.Context, mobile string) (*model.User, error)
	// List returns every user in signup order.
	List(ctx context.Context) ([]model.User, error)
}

// MemoryUserRepository keeps users for the lifetime of the process.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
	order []string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.MobileNumber]; exists {
		return ErrConflict
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[u.MobileNumber] = *u
	r.order = append(r.order, u.MobileNumber)
	return nil
}

func (r *MemoryUserRepository) FindByMobile(ctx context.Context, mobile string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[mobile]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.order))
	for _, m := range r.order {
		users = append(users, r.users[m])
	}
	return users, nil
}
