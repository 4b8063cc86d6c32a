package repository

import (
	"context"
	"sync"
	"time"

	ir "incident_reporting"
)

// UserMemory is the transient identity repository used in fallback mode.
// The Go runtime schedules handlers on multiple goroutines, so every map
// and slice access here runs under the mutex.
type UserMemory struct {
	mu     sync.RWMutex
	users  []ir.User
	nextID int
}

func NewUserMemory() *UserMemory {
	return &UserMemory{nextID: 1}
}

var _ Users = (*UserMemory)(nil)

func (r *UserMemory) GetByID(_ context.Context, id int) (*ir.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(func(u ir.User) bool { return u.ID == id }), nil
}

func (r *UserMemory) GetByUsername(_ context.Context, username string) (*ir.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(func(u ir.User) bool { return u.Username == username }), nil
}

// ListAll returns users in insertion order, which is ascending id order
// because ids come from the monotonic in-process counter.
func (r *UserMemory) ListAll(_ context.Context) ([]ir.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ir.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// Create appends a new user. The duplicate check and the insert happen
// under the same write lock, so no second user with the same name can
// slip in between them.
func (r *UserMemory) Create(_ context.Context, username, passwordHash, role string) (*ir.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findLocked(func(u ir.User) bool { return u.Username == username }); existing != nil {
		return nil, ErrDuplicateUsername
	}

	u := ir.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	r.nextID++
	r.users = append(r.users, u)
	return &u, nil
}

func (r *UserMemory) UpdatePassword(_ context.Context, id int, newHash string) (*ir.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = newHash
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// findLocked returns a copy of the first matching user. Callers must hold
// at least the read lock.
func (r *UserMemory) findLocked(match func(ir.User) bool) *ir.User {
	for i := range r.users {
		if match(r.users[i]) {
			u := r.users[i]
			return &u
		}
	}
	return nil
}
