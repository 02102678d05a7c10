package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alvropena/kakeiboo/internal/model"
)

// ErrBadCredentials is returned by MemoryRepository.SignIn on a wrong
// email/password pair.
var ErrBadCredentials = errors.New("repository: invalid email or password")

type memoryAccount struct {
	id       string
	password string
}

// MemoryRepository is an in-process stand-in for the remote backend.
// It honors the same owner-scoping contract as the Supabase
// implementation and backs the test suites.
type MemoryRepository struct {
	mu           sync.Mutex
	accounts     map[string]memoryAccount // by email
	profiles     map[string]model.UserProfile
	transactions []model.Transaction
	session      *Session
	err          error
	now          func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]memoryAccount),
		profiles: make(map[string]model.UserProfile),
		now:      time.Now,
	}
}

// SetNow overrides the clock used for server-assigned dates.
func (r *MemoryRepository) SetNow(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// SetErr makes every subsequent table operation fail with err until
// cleared with nil. Used to exercise failure paths.
func (r *MemoryRepository) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MemoryRepository) SignUp(ctx context.Context, email, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[email]; exists {
		return errors.New("repository: email already registered")
	}
	r.accounts[email] = memoryAccount{id: uuid.New().String(), password: password}
	return nil
}

func (r *MemoryRepository) SignIn(ctx context.Context, email, password string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[email]
	if !ok || account.password != password {
		return nil, ErrBadCredentials
	}
	r.session = &Session{OwnerID: account.id, Email: email}
	s := *r.session
	return &s, nil
}

func (r *MemoryRepository) SignOut(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

func (r *MemoryRepository) CurrentSession(ctx context.Context) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, nil
	}
	s := *r.session
	return &s, nil
}

func (r *MemoryRepository) GetTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *MemoryRepository) CreateTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	created := *t
	created.ID = uuid.New().String()
	created.Date = r.now()
	r.transactions = append(r.transactions, created)
	return &created, nil
}

func (r *MemoryRepository) DeleteTransaction(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i, t := range r.transactions {
		if t.ID == id && t.OwnerID == ownerID {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	// Matching zero rows is not an error, same as a filtered remote
	// delete.
	return nil
}

func (r *MemoryRepository) DeleteAllTransactions(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	kept := r.transactions[:0]
	for _, t := range r.transactions {
		if t.OwnerID != ownerID {
			kept = append(kept, t)
		}
	}
	r.transactions = kept
	return nil
}

func (r *MemoryRepository) GetProfile(ctx context.Context, ownerID string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) UpsertProfile(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	saved := *p
	if existing, ok := r.profiles[p.ID]; ok {
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.CreatedAt = r.now()
	}
	saved.UpdatedAt = r.now()
	r.profiles[p.ID] = saved
	return &saved, nil
}

// TransactionCount reports the number of stored rows for an owner,
// regardless of any active session. Test helper.
func (r *MemoryRepository) TransactionCount(ownerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.transactions {
		if t.OwnerID == ownerID {
			n++
		}
	}
	return n
}
