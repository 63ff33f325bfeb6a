package account

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/solarsmart/account-service/internal/domain"
)

// ---- store fake ----

type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User

	insertErr      error
	getByEmailErr  error
	recordLoginErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, users: make(map[int64]domain.User)}
}

func (f *fakeStore) seed(u domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.nextID
	f.nextID++
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	if f.insertErr != nil {
		return domain.User{}, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailTaken()
		}
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, name, email, gender string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.Name, u.Email, u.Gender = name, email, gender
	f.users[id] = u
	return u, nil
}

func (f *fakeStore) SetRole(ctx context.Context, id int64, role string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.Role = role
	f.users[id] = u
	return u, nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound()
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CountAndLatest(ctx context.Context, n int) (int, []domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > n {
		out = out[:n]
	}
	return len(f.users), out, nil
}

func (f *fakeStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	if f.recordLoginErr != nil {
		return f.recordLoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.LastLogin = &at
	f.users[id] = u
	return nil
}

// ---- hasher fake ----
//
// "hashed:" prefix keeps the fake cheap and the mismatch path testable.

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// ---- signer fake ----

type fakeSigner struct {
	signErr error
}

func (f *fakeSigner) SignAccessToken(userID int64, email, role string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func (f *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	return TokenClaims{}, errors.New("not implemented in fake")
}

// ---- publisher fake ----

type fakePublisher struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	deleted    []UserDeletedEvent
	err        error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, evt)
	return nil
}

func (f *fakePublisher) PublishUserDeleted(ctx context.Context, evt UserDeletedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, evt)
	return nil
}

// ---- helpers ----

func newTestService(store *fakeStore, pub *fakePublisher) *Service {
	if pub == nil {
		pub = &fakePublisher{}
	}
	return NewService(store, &fakeHasher{}, &fakeSigner{}, pub, Config{TokenTTL: time.Hour})
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if !domain.Is(err, code) {
		t.Fatalf("expected domain error %q, got %v", code, err)
	}
}
