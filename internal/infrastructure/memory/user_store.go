package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/solarsmart/account-service/internal/domain"
)

// UserStore is an in-memory account.UserStore. Used by tests and as a
// substitute backend when no database is configured. The mutex gives it the
// same atomic-uniqueness guarantee on Insert that the Postgres constraint
// provides.
type UserStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64 // email -> userID
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:  1,
		byID:    make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return s.byID[id], nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (s *UserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Name == "" {
		return domain.User{}, domain.ErrMissingField("name")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if _, exists := s.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailTaken()
	}
	if u.Gender == "" {
		u.Gender = domain.GenderUnknown
	}
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}

	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now()

	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *UserStore) Update(ctx context.Context, id int64, name, email, gender string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if other, exists := s.byEmail[email]; exists && other != id {
		return domain.User{}, domain.ErrEmailTaken()
	}

	delete(s.byEmail, u.Email)
	u.Name = name
	u.Email = email
	u.Gender = gender
	s.byID[id] = u
	s.byEmail[email] = id
	return u, nil
}

func (s *UserStore) SetRole(ctx context.Context, id int64, role string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.IsValidRole(role) {
		return domain.User{}, domain.ErrInvalidRole(role)
	}
	u, ok := s.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.Role = role
	s.byID[id] = u
	return u, nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(s.byID, id)
	delete(s.byEmail, u.Email)
	return nil
}

func (s *UserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *UserStore) CountAndLatest(ctx context.Context, n int) (int, []domain.User, error) {
	if n <= 0 {
		n = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })

	if len(users) > n {
		users = users[:n]
	}
	return len(s.byID), users, nil
}

func (s *UserStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.LastLogin = &at
	s.byID[id] = u
	return nil
}
