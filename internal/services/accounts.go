// Package services contains the two domain stores of the application:
// the account store (registration, authentication, session) and the event
// catalog store. Each store mirrors one or two persisted records in memory
// and rewrites the full record on every mutation.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/dbx"
	"github.com/dmitrijs2005/campusevents/internal/logging"
	"github.com/dmitrijs2005/campusevents/internal/models"
	"github.com/dmitrijs2005/campusevents/internal/repositories/records"
)

// Persisted record keys. One key per collection; the session record holds
// a single credential-free profile.
const (
	recordKeyAccounts = "accounts"
	recordKeySession  = "session"
	recordKeyEvents   = "events"
)

// newID is a seam for id allocation.
var newID = uuid.NewString

// RegisterParams carries the signup fields. CollegeName is required for
// students and ignored for admins.
type RegisterParams struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	Role        models.Role
	CollegeName string
}

// AccountService manages the account collection and the current session.
//
// Contract:
//   - Load: populate the in-memory state from persisted records; corrupted
//     or missing records load as an empty collection / no session.
//   - Register: create an account, persist it, and open a session for it.
//   - Authenticate: open a session for an existing account.
//   - EndSession: clear the session; idempotent.
//   - Current: the session profile, or nil when logged out.
//   - FindByID: profile lookup by account id.
//
// Every successful mutation persists synchronously before returning.
// Errors are sentinels from the common package, matched with errors.Is.
type AccountService interface {
	Load(ctx context.Context) error
	Register(ctx context.Context, p RegisterParams) (*models.Profile, error)
	Authenticate(ctx context.Context, email, password string, role models.Role) (*models.Profile, error)
	EndSession(ctx context.Context) error
	Current() *models.Profile
	FindByID(id string) (*models.Profile, error)
}

// accountService is the concrete AccountService backed by the records
// repository. The account slice and session pointer mirror the persisted
// records; the mutex covers both.
type accountService struct {
	db     *sql.DB
	logger logging.Logger

	mu       sync.RWMutex
	accounts []models.Account
	current  *models.Profile
}

// NewAccountService constructs an AccountService over the given database.
// Call Load before use.
func NewAccountService(db *sql.DB, logger logging.Logger) AccountService {
	return &accountService{db: db, logger: logger.With("store", "accounts")}
}

func (s *accountService) getRecordsRepo(db dbx.DBTX) records.Repository {
	return records.NewSQLiteRepository(db)
}

// Load reads the accounts and session records into memory. A missing or
// corrupted accounts record loads as an empty collection; a missing,
// corrupted, or dangling session record loads as no session. Both cases
// are logged and never fail startup.
func (s *accountService) Load(ctx context.Context) error {
	repo := s.getRecordsRepo(s.db)

	data, err := repo.Get(ctx, recordKeyAccounts)
	if err != nil {
		return fmt.Errorf("failed to load accounts record: %w", err)
	}

	var accounts []models.Account
	if len(data) > 0 {
		if err := json.Unmarshal(data, &accounts); err != nil {
			s.logger.Warn(ctx, "accounts record is corrupted, starting with an empty collection", "error", err)
			accounts = nil
		}
	}

	sessionData, err := repo.Get(ctx, recordKeySession)
	if err != nil {
		return fmt.Errorf("failed to load session record: %w", err)
	}

	var current *models.Profile
	if len(sessionData) > 0 {
		var p models.Profile
		if err := json.Unmarshal(sessionData, &p); err != nil {
			s.logger.Warn(ctx, "session record is corrupted, discarding session", "error", err)
		} else if findAccountByID(accounts, p.ID) == nil {
			s.logger.Warn(ctx, "session references an unknown account, discarding session", "id", p.ID)
		} else {
			current = &p
		}
	}

	s.mu.Lock()
	s.accounts = accounts
	s.current = current
	s.mu.Unlock()

	s.logger.Info(ctx, "accounts loaded", "count", len(accounts), "session", current != nil)
	return nil
}

func findAccountByID(accounts []models.Account, id string) *models.Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

func (p RegisterParams) validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	case p.Email == "":
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	case p.Phone == "":
		return fmt.Errorf("%w: phone is required", common.ErrorValidation)
	case p.Password == "":
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if _, ok := models.ParseRole(string(p.Role)); !ok {
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, p.Role)
	}
	if p.Role == models.RoleStudent && p.CollegeName == "" {
		return fmt.Errorf("%w: college name is required for students", common.ErrorValidation)
	}
	return nil
}

// Register creates a new account and opens a session for it. The email must
// not already exist in the collection; the check deliberately spans both
// roles, so one email cannot hold an admin and a student account. On any
// error no state changes. The accounts record and the session record are
// written in a single transaction.
func (s *accountService) Register(ctx context.Context, p RegisterParams) (*models.Profile, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].Email == p.Email {
			return nil, common.ErrorDuplicateAccount
		}
	}

	account := models.Account{
		ID:       newID(),
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Password: p.Password,
		Role:     p.Role,
	}
	if p.Role == models.RoleStudent {
		account.CollegeName = p.CollegeName
	}

	updated := append(append([]models.Account(nil), s.accounts...), account)
	profile := account.Profile()

	accountsDoc, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize accounts: %w", err)
	}
	sessionDoc, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize session: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getRecordsRepo(tx)
		if err := repo.Set(ctx, recordKeyAccounts, accountsDoc); err != nil {
			return err
		}
		return repo.Set(ctx, recordKeySession, sessionDoc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist registration: %w", err)
	}

	s.accounts = updated
	s.current = &profile

	s.logger.Info(ctx, "account registered", "id", account.ID, "role", account.Role)
	result := profile
	return &result, nil
}

// Authenticate matches (email, role) exactly and compares the password
// verbatim. A failed attempt leaves any existing session untouched. On
// success the session is set to the account's profile and persisted.
func (s *accountService) Authenticate(ctx context.Context, email, password string, role models.Role) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var account *models.Account
	for i := range s.accounts {
		if s.accounts[i].Email == email && s.accounts[i].Role == role {
			account = &s.accounts[i]
			break
		}
	}
	if account == nil {
		return nil, common.ErrorNotFound
	}
	if account.Password != password {
		return nil, common.ErrorInvalidCredential
	}

	profile := account.Profile()
	sessionDoc, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.getRecordsRepo(s.db).Set(ctx, recordKeySession, sessionDoc); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.current = &profile

	s.logger.Info(ctx, "session opened", "id", account.ID, "role", account.Role)
	result := profile
	return &result, nil
}

// EndSession clears the current session and removes the persisted session
// record. Calling it without an active session is a no-op.
func (s *accountService) EndSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.getRecordsRepo(s.db).Delete(ctx, recordKeySession); err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	s.current = nil
	return nil
}

// Current returns a copy of the session profile, or nil when logged out.
func (s *accountService) Current() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// FindByID returns the credential-free profile of the account with the
// given id, or ErrorNotFound.
func (s *accountService) FindByID(id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account := findAccountByID(s.accounts, id)
	if account == nil {
		return nil, common.ErrorNotFound
	}
	p := account.Profile()
	return &p, nil
}
