package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/snapshot"
)

// UserRepository persists the signed-in user's snapshot under KeyCurrentUser
// and the user directory under KeyUsers.
type UserRepository struct {
	store Store
}

func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return v, ok, nil
}

func (r *UserRepository) set(ctx context.Context, key string, value []byte) error {
	if err := r.store.Set(ctx, key, string(value)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (r *UserRepository) remove(ctx context.Context, key string) error {
	if err := r.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// CurrentUser loads the signed-in user. It returns domain.ErrNoCurrentUser
// when nobody is signed in and a malformed snapshot error when the stored
// record does not decode.
func (r *UserRepository) CurrentUser(ctx context.Context) (domain.User, error) {
	raw, ok, err := r.get(ctx, KeyCurrentUser)
	if err != nil {
		return domain.User{}, fmt.Errorf("CurrentUser: %w", err)
	}
	if !ok {
		return domain.User{}, fmt.Errorf("CurrentUser: %w", domain.ErrNoCurrentUser)
	}
	u, err := snapshot.DecodeUser([]byte(raw))
	if err != nil {
		return domain.User{}, fmt.Errorf("CurrentUser: %w", err)
	}
	return u, nil
}

// SaveCurrentUser writes u as the signed-in user and replaces the directory
// entry with the same id, if there is one. Directory entries that do not
// decode are carried over untouched.
func (r *UserRepository) SaveCurrentUser(ctx context.Context, u domain.User) error {
	data, err := snapshot.EncodeUser(u)
	if err != nil {
		return fmt.Errorf("SaveCurrentUser: %w", err)
	}
	if err := r.set(ctx, KeyCurrentUser, data); err != nil {
		return fmt.Errorf("SaveCurrentUser: %w", err)
	}

	raw, ok, err := r.get(ctx, KeyUsers)
	if err != nil {
		return fmt.Errorf("SaveCurrentUser: %w", err)
	}
	if !ok {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logging.FromContext(ctx).Warn("user directory unreadable, not updated", "error", err)
		return nil
	}
	for i, entry := range entries {
		var ref struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(entry, &ref) == nil && ref.ID == u.ID {
			entries[i] = data
		}
	}
	updated, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("SaveCurrentUser: %w", err)
	}
	if err := r.set(ctx, KeyUsers, updated); err != nil {
		return fmt.Errorf("SaveCurrentUser: %w", err)
	}
	return nil
}

// Logout forgets the signed-in user. The directory is kept.
func (r *UserRepository) Logout(ctx context.Context) error {
	if err := r.remove(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("Logout: %w", err)
	}
	return nil
}

// AllUsers returns every directory entry that decodes. Entries that fail
// validation are dropped and logged; an unreadable directory reads as empty.
func (r *UserRepository) AllUsers(ctx context.Context) ([]domain.User, error) {
	raw, ok, err := r.get(ctx, KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("AllUsers: %w", err)
	}
	if !ok {
		return []domain.User{}, nil
	}
	users, rejects, err := snapshot.DecodeUsers([]byte(raw))
	if err != nil {
		logging.FromContext(ctx).Warn("user directory unreadable", "error", err)
		return []domain.User{}, nil
	}
	for _, reject := range rejects {
		logging.FromContext(ctx).Warn("dropping invalid directory entry", "error", reject)
	}
	return users, nil
}

// FindByEmail looks a user up in the directory.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	users, err := r.AllUsers(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("FindByEmail: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("FindByEmail: %w", domain.ErrNotFound)
}

// AddUser appends u to the directory. A user sharing u's email or id is a
// conflict and leaves the directory as it was.
func (r *UserRepository) AddUser(ctx context.Context, u domain.User) error {
	users, err := r.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("AddUser: %w", err)
	}
	for _, existing := range users {
		if existing.Email == u.Email || existing.ID == u.ID {
			return fmt.Errorf("AddUser: %w", domain.ErrUserExists)
		}
	}
	if err := r.writeUsers(ctx, append(users, u)); err != nil {
		return fmt.Errorf("AddUser: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	users, err := r.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	kept := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return fmt.Errorf("DeleteUser: %w", domain.ErrNotFound)
	}
	if err := r.writeUsers(ctx, kept); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}

func (r *UserRepository) writeUsers(ctx context.Context, users []domain.User) error {
	data, err := snapshot.EncodeUsers(users)
	if err != nil {
		return err
	}
	return r.set(ctx, KeyUsers, data)
}

// Restore overwrites both keys from an already validated backup. If the
// second write fails the directory is put back the way it was.
func (r *UserRepository) Restore(ctx context.Context, b snapshot.Bundle) error {
	users, err := snapshot.EncodeUsers(b.AllUsers)
	if err != nil {
		return fmt.Errorf("Restore: %w", err)
	}
	current, err := snapshot.EncodeUser(b.CurrentUser)
	if err != nil {
		return fmt.Errorf("Restore: %w", err)
	}
	prev, hadPrev, err := r.get(ctx, KeyUsers)
	if err != nil {
		return fmt.Errorf("Restore: %w", err)
	}
	if err := r.set(ctx, KeyUsers, users); err != nil {
		return fmt.Errorf("Restore: %w", err)
	}
	if err := r.set(ctx, KeyCurrentUser, current); err != nil {
		var undo error
		if hadPrev {
			undo = r.set(ctx, KeyUsers, []byte(prev))
		} else {
			undo = r.remove(ctx, KeyUsers)
		}
		if undo != nil {
			return fmt.Errorf("Restore: %w", errors.Join(err, fmt.Errorf("rollback %s: %w", KeyUsers, undo)))
		}
		return fmt.Errorf("Restore: %w", err)
	}
	return nil
}

// ClearAll removes the signed-in user and the directory.
func (r *UserRepository) ClearAll(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyCurrentUser, KeyUsers} {
		if err := r.remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("ClearAll: %w", err)
	}
	return nil
}

// Stats describes how much the two keys occupy in the store.
type Stats struct {
	CurrentUserBytes int
	UsersBytes       int
	UserCount        int
}

func (s Stats) TotalBytes() int {
	return s.CurrentUserBytes + s.UsersBytes
}

// KB renders a byte count in kilobytes rounded to two places.
func KB(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n)).Div(decimal.NewFromInt(1024)).Round(2)
}

func (r *UserRepository) Stats(ctx context.Context) (Stats, error) {
	current, _, err := r.get(ctx, KeyCurrentUser)
	if err != nil {
		return Stats{}, fmt.Errorf("Stats: %w", err)
	}
	users, _, err := r.get(ctx, KeyUsers)
	if err != nil {
		return Stats{}, fmt.Errorf("Stats: %w", err)
	}

	s := Stats{CurrentUserBytes: len(current), UsersBytes: len(users)}
	var entries []json.RawMessage
	if users != "" && json.Unmarshal([]byte(users), &entries) == nil {
		s.UserCount = len(entries)
	}
	return s, nil
}
