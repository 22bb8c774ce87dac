// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/xivind/gas-gauge/internal/domain"
)

// DB implements every repository port in memory behind a single mutex.
type DB struct {
	mu        sync.Mutex
	canisters []domain.Canister
	types     []domain.CanisterType
	weighings []domain.Weighing
	users     []domain.User
	sessions  map[string]domain.Session

	typeIDCounter     int64
	weighingIDCounter int64
	userIDCounter     int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{sessions: make(map[string]domain.Session)}
}

// Ensure interfaces are met.
var _ domain.CanisterRepository = (*DB)(nil)
var _ domain.CanisterTypeRepository = (*DB)(nil)
var _ domain.WeighingRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)

// --- CanisterRepository ---

// ListCanisters returns all canisters.
func (db *DB) ListCanisters(ctx context.Context) ([]domain.Canister, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Canister, len(db.canisters))
	copy(out, db.canisters)
	return out, nil
}

// GetCanister returns a canister by id, or nil if absent.
func (db *DB) GetCanister(ctx context.Context, id string) (*domain.Canister, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.canisters {
		if db.canisters[i].ID == id {
			c := db.canisters[i]
			return &c, nil
		}
	}
	return nil, nil
}

// CreateCanister stores a new canister.
func (db *DB) CreateCanister(ctx context.Context, c domain.Canister) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.canisters {
		if db.canisters[i].ID == c.ID {
			return errors.New("canister already exists")
		}
	}
	db.canisters = append(db.canisters, c)
	return nil
}

// UpdateCanisterLabel changes a canister's label.
func (db *DB) UpdateCanisterLabel(ctx context.Context, id, label string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.canisters {
		if db.canisters[i].ID == id {
			db.canisters[i].Label = label
			return nil
		}
	}
	return nil
}

// UpdateCanisterStatus changes a canister's lifecycle status.
func (db *DB) UpdateCanisterStatus(ctx context.Context, id string, status domain.Status) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.canisters {
		if db.canisters[i].ID == id {
			db.canisters[i].Status = status
			return nil
		}
	}
	return nil
}

// DeleteCanister removes a canister and cascades to its weighings.
func (db *DB) DeleteCanister(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.weighings[:0]
	for _, w := range db.weighings {
		if w.CanisterID != id {
			kept = append(kept, w)
		}
	}
	db.weighings = kept

	for i := range db.canisters {
		if db.canisters[i].ID == id {
			db.canisters = append(db.canisters[:i], db.canisters[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- CanisterTypeRepository ---

// ListCanisterTypes returns all canister types.
func (db *DB) ListCanisterTypes(ctx context.Context) ([]domain.CanisterType, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.CanisterType, len(db.types))
	copy(out, db.types)
	return out, nil
}

// GetCanisterType returns a canister type by id, or nil if absent.
func (db *DB) GetCanisterType(ctx context.Context, id int64) (*domain.CanisterType, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.types {
		if db.types[i].ID == id {
			t := db.types[i]
			return &t, nil
		}
	}
	return nil, nil
}

// CreateCanisterType stores a new type, or returns the existing one with the
// same name.
func (db *DB) CreateCanisterType(ctx context.Context, name string, fullWeight, emptyWeight int) (*domain.CanisterType, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.types {
		if db.types[i].Name == name {
			t := db.types[i]
			return &t, false, nil
		}
	}

	db.typeIDCounter++
	t := domain.CanisterType{
		ID:          db.typeIDCounter,
		Name:        name,
		FullWeight:  fullWeight,
		EmptyWeight: emptyWeight,
	}
	db.types = append(db.types, t)
	return &t, true, nil
}

// DeleteCanisterType removes a canister type.
func (db *DB) DeleteCanisterType(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.types {
		if db.types[i].ID == id {
			db.types = append(db.types[:i], db.types[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- WeighingRepository ---

// ListWeighingsForCanister returns a canister's weighings, newest recorded
// date first. Same-day ties break on id descending so the latest insert wins.
func (db *DB) ListWeighingsForCanister(ctx context.Context, canisterID string) ([]domain.Weighing, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Weighing
	for _, w := range db.weighings {
		if w.CanisterID == canisterID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordedAt != out[j].RecordedAt {
			return out[i].RecordedAt > out[j].RecordedAt
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// LatestWeighingForCanister returns the newest weighing by recorded date, or
// nil if the canister has none.
func (db *DB) LatestWeighingForCanister(ctx context.Context, canisterID string) (*domain.Weighing, error) {
	all, err := db.ListWeighingsForCanister(ctx, canisterID)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	w := all[0]
	return &w, nil
}

// GetWeighing returns a weighing by id, or nil if absent.
func (db *DB) GetWeighing(ctx context.Context, id int64) (*domain.Weighing, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weighings {
		if db.weighings[i].ID == id {
			w := db.weighings[i]
			return &w, nil
		}
	}
	return nil, nil
}

// CreateWeighing stores a new weighing and returns its id.
func (db *DB) CreateWeighing(ctx context.Context, w domain.Weighing) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weighingIDCounter++
	w.ID = db.weighingIDCounter
	db.weighings = append(db.weighings, w)
	return w.ID, nil
}

// DeleteWeighing removes a single weighing.
func (db *DB) DeleteWeighing(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weighings {
		if db.weighings[i].ID == id {
			db.weighings = append(db.weighings[:i], db.weighings[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- UserRepository ---

// GetUserByName retrieves a user by username, or nil if absent.
func (db *DB) GetUserByName(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.users {
		if db.users[i].Username == username {
			u := db.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by id, or nil if absent.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.users {
		if db.users[i].ID == id {
			u := db.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser creates a new user.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.users {
		if db.users[i].Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return &u, nil
}

// CountUsers returns the total number of users.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// CreateSession stores a new session.
func (db *DB) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.sessions[token] = domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetSession retrieves a session by token, or nil if absent.
func (db *DB) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.sessions[token]; ok {
		return &s, nil
	}
	return nil, nil
}

// DeleteSession removes a session.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.sessions, token)
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (db *DB) DeleteExpiredSessions(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now()
	for token, s := range db.sessions {
		if now.After(s.ExpiresAt) {
			delete(db.sessions, token)
		}
	}
	return nil
}
