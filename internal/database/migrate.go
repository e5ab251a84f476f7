package database

import (
	"database/sql"
	"fmt"
)

// schema is applied at startup. Every statement is idempotent so restarting
// the server against an existing database is safe.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          BIGSERIAL PRIMARY KEY,
	username    TEXT NOT NULL UNIQUE,
	email       TEXT NOT NULL UNIQUE,
	avatar_url  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS groups (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT,
	is_temporary BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS group_members (
	id         BIGSERIAL PRIMARY KEY,
	group_id   BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	status     TEXT NOT NULL DEFAULT 'INVITED',
	role       TEXT NOT NULL DEFAULT 'MEMBER',
	joined_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (group_id, user_id)
);

CREATE TABLE IF NOT EXISTS group_invites (
	id          BIGSERIAL PRIMARY KEY,
	group_id    BIGINT NOT NULL UNIQUE REFERENCES groups(id) ON DELETE CASCADE,
	code        TEXT NOT NULL UNIQUE,
	created_by  BIGINT NOT NULL REFERENCES users(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expenses (
	id          BIGSERIAL PRIMARY KEY,
	group_id    BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
	payer_id    BIGINT NOT NULL REFERENCES users(id),
	description TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT 'Other',
	amount      NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
	date        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expense_shares (
	id         BIGSERIAL PRIMARY KEY,
	expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
	member_id  BIGINT NOT NULL REFERENCES users(id),
	amount     NUMERIC(12,2) NOT NULL CHECK (amount >= 0)
);

CREATE TABLE IF NOT EXISTS settlements (
	id          BIGSERIAL PRIMARY KEY,
	group_id    BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
	from_user   BIGINT NOT NULL REFERENCES users(id),
	to_user     BIGINT NOT NULL REFERENCES users(id),
	amount      NUMERIC(12,2) NOT NULL CHECK (amount > 0),
	settled_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_expenses_group ON expenses(group_id);
CREATE INDEX IF NOT EXISTS idx_expense_shares_expense ON expense_shares(expense_id);
CREATE INDEX IF NOT EXISTS idx_settlements_group ON settlements(group_id);
`

// Migrate creates the schema if it does not exist yet
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
