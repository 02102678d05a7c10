package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"github.com/alvropena/kakeiboo/internal/model"
)

// SupabaseRepository implements Identity and Store on a single Supabase
// client. Signing in installs the user token on the client, so one
// repository carries exactly one session at a time; the bot keeps one
// per chat.
type SupabaseRepository struct {
	client  *supabase.Client
	session *types.Session
}

// NewSupabaseRepository connects with the anonymous key. All table
// access happens under the signed-in user's token once SignIn succeeds.
func NewSupabaseRepository(url, anonKey string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, anonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseRepository{client: client}, nil
}

func (r *SupabaseRepository) SignUp(ctx context.Context, email, password string) error {
	_, err := r.client.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to sign up: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) SignIn(ctx context.Context, email, password string) (*Session, error) {
	session, err := r.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	r.session = &session
	return &Session{
		OwnerID: session.User.ID.String(),
		Email:   session.User.Email,
	}, nil
}

func (r *SupabaseRepository) SignOut(ctx context.Context) error {
	if r.session == nil {
		return nil
	}
	// Drop the local session even if token revocation fails; the caller
	// must end up signed out either way.
	r.session = nil
	if err := r.client.Auth.Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CurrentSession(ctx context.Context) (*Session, error) {
	if r.session == nil {
		return nil, nil
	}
	return &Session{
		OwnerID: r.session.User.ID.String(),
		Email:   r.session.User.Email,
	}, nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	data, _, err := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", ownerID).
		Order("date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	// Insert only the client-owned columns so the server assigns id and
	// date.
	row := map[string]interface{}{
		"user_id":     t.OwnerID,
		"description": t.Description,
		"amount":      t.Amount,
	}
	data, _, err := r.client.From("transactions").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("failed to create transaction: empty response")
	}
	return &created[0], nil
}

func (r *SupabaseRepository) DeleteTransaction(ctx context.Context, id, ownerID string) error {
	_, _, err := r.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", ownerID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) DeleteAllTransactions(ctx context.Context, ownerID string) error {
	_, _, err := r.client.From("transactions").
		Delete("", "").
		Eq("user_id", ownerID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetProfile(ctx context.Context, ownerID string) (*model.UserProfile, error) {
	data, _, err := r.client.From("users").
		Select("*", "", false).
		Eq("id", ownerID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profiles []model.UserProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return &profiles[0], nil
}

func (r *SupabaseRepository) UpsertProfile(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	row := map[string]interface{}{
		"id":       p.ID,
		"name":     p.Name,
		"birthday": p.Birthday,
		"gender":   p.Gender,
		"currency": p.Currency,
	}
	if p.Email != "" {
		row["email"] = p.Email
	}
	data, _, err := r.client.From("users").
		Insert(row, true, "id", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	var saved []model.UserProfile
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse saved profile: %w", err)
	}
	if len(saved) == 0 {
		return nil, fmt.Errorf("failed to upsert profile: empty response")
	}
	return &saved[0], nil
}
