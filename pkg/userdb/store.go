// Package userdb manages login accounts and their sessions in SQLite. The
// database file lives at the top of the storage root, outside every user's
// directory, so it can never appear in a listing or be deleted over HTTP.
package userdb

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"nasfs/pkg/models"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// usernamePattern defines the valid format for usernames.
// Usernames must be 3-32 characters, lowercase alphanumeric, and can contain
// hyphens and underscores after the first character. The character set keeps
// every username usable as a single directory name under the storage root.
var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,31}$`)

// Store manages users and sessions in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new user store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	ctx := context.Background()

	// Enable foreign keys
	if _, err := database.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable foreign keys: %w", ErrDatabaseError, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabaseError, err)
	}

	store := &Store{db: database}
	if err := store.Initialize(); err != nil {
		_ = database.Close()
		return nil, err
	}

	return store, nil
}

// Initialize creates the database schema.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(context.Background(), Schema)
	if err != nil {
		return fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabaseError, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ValidateUsername checks if the username is valid.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLength || len(username) > usernameMaxLength {
		return ErrInvalidUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// CreateUser creates a new account with a bcrypt-hashed password.
func (s *Store) CreateUser(username, password string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result, err := s.db.ExecContext(context.Background(),
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, string(hash), now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return &models.User{
		ID:        userID,
		Username:  username,
		CreatedAt: now,
	}, nil
}

// Authenticate verifies a username/password pair and returns the account. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *Store) Authenticate(username, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := &models.User{}
	var passwordHash string
	err := s.db.QueryRowContext(context.Background(),
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &passwordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns all accounts ordered by username.
func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, username, created_at FROM users ORDER BY username`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return users, nil
}

// CreateSession issues a new random session token for the user, valid for
// ttl from now.
func (s *Store) CreateSession(username string, ttl time.Duration) (*models.Session, error) {
	tokenBytes := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expiresAt := now.Add(ttl)
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO sessions (token, username, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		token, username, now, expiresAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return &models.Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// SessionUser resolves a session token to its username. An expired session
// is deleted on sight and reported the same as a missing one.
func (s *Store) SessionUser(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	var (
		username  string
		expiresAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT username, expires_at FROM sessions WHERE token = ?`,
		token,
	).Scan(&username, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if time.Now().After(expiresAt) {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
			return "", fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		return "", ErrSessionNotFound
	}

	return username, nil
}

// DeleteSession removes a session token, logging the user out everywhere
// the token was used.
func (s *Store) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(context.Background(),
		`DELETE FROM sessions WHERE token = ?`, token,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// PurgeExpired deletes every expired session and reports how many were
// removed.
func (s *Store) PurgeExpired() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(context.Background(),
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return purged, nil
}
