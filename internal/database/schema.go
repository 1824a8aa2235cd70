package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaLockID serializes concurrent Migrate calls from several replicas.
const schemaLockID = 7_240_118

// schema is idempotent; every statement uses IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS members (
	id                  UUID PRIMARY KEY,
	auth_subject        TEXT NOT NULL UNIQUE,
	first_name          VARCHAR(100) NOT NULL DEFAULT '',
	last_name           VARCHAR(100) NOT NULL DEFAULT '',
	email               VARCHAR(254) NOT NULL DEFAULT '',
	phone               VARCHAR(20)  NOT NULL DEFAULT '',
	bio                 TEXT NOT NULL DEFAULT '',
	is_community_member BOOLEAN NOT NULL DEFAULT FALSE,
	is_admin            BOOLEAN NOT NULL DEFAULT FALSE,
	joined_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS members_email_idx ON members (lower(email));

CREATE TABLE IF NOT EXISTS events (
	id               UUID PRIMARY KEY,
	title            VARCHAR(200) NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	event_type       VARCHAR(20) NOT NULL DEFAULT 'meetup',
	date_time        TIMESTAMPTZ NOT NULL,
	deadline         TIMESTAMPTZ NOT NULL,
	location         VARCHAR(300) NOT NULL,
	is_online        BOOLEAN NOT NULL DEFAULT FALSE,
	max_participants INTEGER CHECK (max_participants IS NULL OR max_participants > 0),
	price            NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (price >= 0),
	requirements     TEXT NOT NULL DEFAULT '',
	status           VARCHAR(20) NOT NULL DEFAULT 'upcoming'
	                 CHECK (status IN ('upcoming', 'ongoing', 'completed', 'cancelled')),
	created_by       UUID REFERENCES members (id) ON DELETE SET NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_status_deadline_idx ON events (status, deadline);
CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at);

CREATE TABLE IF NOT EXISTS bookings (
	id        UUID PRIMARY KEY,
	event_id  UUID NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	member_id UUID NOT NULL REFERENCES members (id) ON DELETE CASCADE,
	status    VARCHAR(20) NOT NULL DEFAULT 'confirmed'
	          CHECK (status IN ('pending', 'confirmed', 'cancelled', 'attended')),
	booked_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	notes     TEXT NOT NULL DEFAULT '',
	UNIQUE (event_id, member_id)
);
CREATE INDEX IF NOT EXISTS bookings_event_status_idx ON bookings (event_id, status);
CREATE INDEX IF NOT EXISTS bookings_member_idx ON bookings (member_id);

CREATE TABLE IF NOT EXISTS reviews (
	id         UUID PRIMARY KEY,
	member_id  UUID NOT NULL UNIQUE REFERENCES members (id) ON DELETE CASCADE,
	rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL,
	is_public  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS membership_applications (
	id              UUID PRIMARY KEY,
	first_name      VARCHAR(100) NOT NULL,
	last_name       VARCHAR(100) NOT NULL,
	email           VARCHAR(254) NOT NULL UNIQUE,
	phone           VARCHAR(20)  NOT NULL,
	date_of_birth   DATE NOT NULL,
	gender          VARCHAR(20)  NOT NULL,
	id_number       VARCHAR(50)  NOT NULL UNIQUE,
	current_address TEXT NOT NULL,
	region          VARCHAR(50)  NOT NULL,
	district        VARCHAR(100) NOT NULL,
	education       VARCHAR(50)  NOT NULL,
	occupation      VARCHAR(200) NOT NULL,
	work_experience JSONB NOT NULL DEFAULT '[]',
	skills          JSONB NOT NULL DEFAULT '[]',
	languages       JSONB NOT NULL DEFAULT '[]',
	why_join        TEXT NOT NULL,
	contribution    TEXT NOT NULL,
	expectations    TEXT NOT NULL,
	referral        VARCHAR(50) NOT NULL DEFAULT '',
	agree_terms     BOOLEAN NOT NULL DEFAULT FALSE,
	status          VARCHAR(20) NOT NULL DEFAULT 'pending'
	                CHECK (status IN ('pending', 'approved', 'rejected')),
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS membership_applications_status_idx
	ON membership_applications (status, created_at DESC);

CREATE TABLE IF NOT EXISTS team_members (
	id         UUID PRIMARY KEY,
	name       VARCHAR(100) NOT NULL,
	position   VARCHAR(50)  NOT NULL
	           CHECK (position IN ('founder', 'coordinator', 'manager', 'mentor', 'advisor', 'other')),
	bio        TEXT NOT NULL DEFAULT '',
	quote      TEXT NOT NULL DEFAULT '',
	image_url  VARCHAR(500) NOT NULL DEFAULT '',
	email      VARCHAR(254) NOT NULL DEFAULT '',
	linkedin   VARCHAR(200) NOT NULL DEFAULT '',
	sort_order INTEGER NOT NULL DEFAULT 0 CHECK (sort_order >= 0),
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS team_members_order_idx ON team_members (sort_order, name);

CREATE TABLE IF NOT EXISTS community_stats (
	id               SMALLINT PRIMARY KEY CHECK (id = 1),
	active_members   INTEGER NOT NULL DEFAULT 0,
	total_events     INTEGER NOT NULL DEFAULT 0,
	mentorship_pairs INTEGER NOT NULL DEFAULT 0,
	active_projects  INTEGER NOT NULL DEFAULT 0,
	last_updated     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockID); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	if _, err := tx.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
