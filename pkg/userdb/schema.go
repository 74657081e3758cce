package userdb

// Schema contains the SQL statements to create the user database schema.
const Schema = `
-- Users table: stores login accounts
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Sessions table: maps issued tokens to accounts
CREATE TABLE IF NOT EXISTS sessions (
    token      TEXT PRIMARY KEY,
    username   TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    expires_at DATETIME NOT NULL,
    FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
);

-- Indexes for performance
CREATE INDEX IF NOT EXISTS idx_sessions_username ON sessions(username);
CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
`

// usernameMinLength is the minimum length for a username.
const usernameMinLength = 3

// usernameMaxLength is the maximum length for a username.
const usernameMaxLength = 32

// sessionTokenBytes is the number of random bytes in a session token. The
// token string is its hex form, twice as long.
const sessionTokenBytes = 32
