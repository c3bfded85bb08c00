package database

import (
	"context"
	"database/sql"
	"fmt"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(200) NOT NULL UNIQUE,
		phone VARCHAR(20) NOT NULL UNIQUE,
		password TEXT NOT NULL,
		roles TEXT NOT NULL DEFAULT 'USER',
		balance NUMERIC(24, 8) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id VARCHAR(36) PRIMARY KEY,
		type VARCHAR(20) NOT NULL,
		currency VARCHAR(10) NOT NULL,
		amount NUMERIC(24, 8) NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id VARCHAR(36) NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		sender_id VARCHAR(36) REFERENCES accounts(id) ON DELETE CASCADE,
		receiver_id VARCHAR(36) REFERENCES accounts(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_sender_id ON transactions(sender_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_receiver_id ON transactions(receiver_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// sqlite keeps decimals as TEXT so they round-trip without float rounding
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		roles TEXT NOT NULL DEFAULT 'USER',
		balance TEXT NOT NULL DEFAULT '0',
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		currency TEXT NOT NULL,
		amount TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		user_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		sender_id TEXT REFERENCES accounts(id) ON DELETE CASCADE,
		receiver_id TEXT REFERENCES accounts(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_sender_id ON transactions(sender_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_receiver_id ON transactions(receiver_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// InitSchema creates the tables when they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema := postgresSchema
	if dialect.Driver == DriverSQLite {
		schema = sqliteSchema
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}
