package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema creates the accounts and transactions tables.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id UUID PRIMARY KEY,
	username VARCHAR(64) NOT NULL,
	email VARCHAR(120) NOT NULL,
	account_number CHAR(10) NOT NULL,
	balance NUMERIC(20,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
	status VARCHAR(16) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'active', 'deactivated')),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	is_manager BOOLEAN NOT NULL DEFAULT FALSE,
	password_hash TEXT NOT NULL,
	pin_hash TEXT NOT NULL DEFAULT '',
	session_token TEXT NOT NULL DEFAULT '',
	last_login TIMESTAMPTZ,
	last_activity TIMESTAMPTZ,
	force_password_change BOOLEAN NOT NULL DEFAULT FALSE,
	firstname TEXT NOT NULL DEFAULT '',
	lastname TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	address_line TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	region_code TEXT NOT NULL DEFAULT '',
	region_name TEXT NOT NULL DEFAULT '',
	province_code TEXT NOT NULL DEFAULT '',
	province_name TEXT NOT NULL DEFAULT '',
	city_code TEXT NOT NULL DEFAULT '',
	city_name TEXT NOT NULL DEFAULT '',
	barangay_code TEXT NOT NULL DEFAULT '',
	barangay_name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT accounts_username_key UNIQUE (username),
	CONSTRAINT accounts_email_key UNIQUE (email),
	CONSTRAINT accounts_account_number_key UNIQUE (account_number)
);

CREATE TABLE IF NOT EXISTS transactions (
	id BIGSERIAL PRIMARY KEY,
	transaction_id VARCHAR(36) NOT NULL UNIQUE,
	sender_id UUID NOT NULL REFERENCES accounts(id),
	receiver_id UUID NOT NULL REFERENCES accounts(id),
	amount NUMERIC(20,2) NOT NULL CHECK (amount >= 0),
	transaction_type VARCHAR(20) NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS transactions_sender_idx ON transactions (sender_id, created_at DESC);
CREATE INDEX IF NOT EXISTS transactions_receiver_idx ON transactions (receiver_id, created_at DESC);
`

// Migrate applies Schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
