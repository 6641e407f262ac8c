// Package migration applies the schema as ordered, named SQL steps.
// Applied step names are recorded in the schema_migrations sentinel table so reruns are no-ops.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL,
  password_hash TEXT        NOT NULL,
  name          TEXT        NOT NULL,
  company       TEXT        NOT NULL DEFAULT '',
  phone         TEXT        NOT NULL DEFAULT '',
  role          TEXT        NOT NULL CHECK (role IN ('TRADER', 'LOGISTICS_PARTNER', 'ADMIN')),
  verified      BOOLEAN     NOT NULL DEFAULT false,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_email",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email));`,
	},
	{
		Name: "create_table_partner_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS partner_profiles (
  user_id                UUID             PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
  hazard_classes         JSONB            NOT NULL DEFAULT '[]',
  service_regions        JSONB            NOT NULL DEFAULT '[]',
  max_capacity_tons      DOUBLE PRECISION NOT NULL CHECK (max_capacity_tons > 0),
  temperature_controlled BOOLEAN          NOT NULL DEFAULT false,
  rating                 DOUBLE PRECISION NOT NULL DEFAULT 0,
  subscription_tier      TEXT             NOT NULL DEFAULT 'FREE' CHECK (subscription_tier IN ('FREE', 'STANDARD', 'PREMIUM')),
  webhook_url            TEXT             NOT NULL DEFAULT '',
  webhook_secret         TEXT             NOT NULL DEFAULT '',
  active                 BOOLEAN          NOT NULL DEFAULT true,
  updated_at             TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_quotes",
		SQL: `CREATE TABLE IF NOT EXISTS quotes (
  id                     UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  reference              TEXT             NOT NULL UNIQUE,
  trader_id              UUID             NOT NULL REFERENCES users (id),
  cargo_name             TEXT             NOT NULL,
  cas_number             TEXT             NOT NULL DEFAULT '',
  un_number              TEXT             NOT NULL DEFAULT '',
  hazard_class           SMALLINT         NOT NULL CHECK (hazard_class BETWEEN 0 AND 9),
  quantity               DOUBLE PRECISION NOT NULL CHECK (quantity > 0),
  unit                   TEXT             NOT NULL CHECK (unit IN ('MT', 'KG', 'L')),
  packaging              TEXT             NOT NULL DEFAULT '',
  pickup_city            TEXT             NOT NULL,
  pickup_region          TEXT             NOT NULL,
  delivery_city          TEXT             NOT NULL,
  delivery_region        TEXT             NOT NULL,
  pickup_date            TIMESTAMPTZ      NOT NULL,
  temperature_controlled BOOLEAN          NOT NULL DEFAULT false,
  special_instructions   TEXT             NOT NULL DEFAULT '',
  status                 TEXT             NOT NULL CHECK (status IN ('OPEN', 'OFFERS_RECEIVED', 'BOOKED', 'EXPIRED', 'CANCELLED')),
  selected_offer_id      UUID,
  expires_at             TIMESTAMPTZ      NOT NULL,
  created_at             TIMESTAMPTZ      NOT NULL DEFAULT now(),
  updated_at             TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_quotes_status_expires_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_quotes_status_expires_at ON quotes (status, expires_at);`,
	},
	{
		Name: "create_index_quotes_trader_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_quotes_trader_id ON quotes (trader_id, created_at);`,
	},
	{
		Name: "create_table_offers",
		SQL: `CREATE TABLE IF NOT EXISTS offers (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  quote_id     UUID        NOT NULL REFERENCES quotes (id) ON DELETE CASCADE,
  partner_id   UUID        NOT NULL REFERENCES users (id),
  price        BIGINT      NOT NULL CHECK (price > 0),
  currency     TEXT        NOT NULL DEFAULT 'INR',
  transit_days INTEGER     NOT NULL CHECK (transit_days > 0),
  valid_until  TIMESTAMPTZ NOT NULL,
  remarks      TEXT        NOT NULL DEFAULT '',
  status       TEXT        NOT NULL CHECK (status IN ('PENDING', 'ACCEPTED', 'REJECTED', 'WITHDRAWN')),
  lead_cost    BIGINT      NOT NULL DEFAULT 0,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_offers_live_partner",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_offers_live_partner ON offers (quote_id, partner_id) WHERE status <> 'WITHDRAWN';`,
	},
	{
		Name: "create_index_offers_accepted",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_offers_accepted ON offers (quote_id) WHERE status = 'ACCEPTED';`,
	},
	{
		Name: "create_index_offers_partner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_offers_partner_id ON offers (partner_id, created_at);`,
	},
	{
		Name: "create_table_shipments",
		SQL: `CREATE TABLE IF NOT EXISTS shipments (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tracking_number TEXT        NOT NULL UNIQUE,
  quote_id        UUID        NOT NULL UNIQUE REFERENCES quotes (id),
  offer_id        UUID        NOT NULL UNIQUE REFERENCES offers (id),
  trader_id       UUID        NOT NULL REFERENCES users (id),
  partner_id      UUID        NOT NULL REFERENCES users (id),
  status          TEXT        NOT NULL CHECK (status IN ('BOOKED', 'PICKED_UP', 'IN_TRANSIT', 'DELIVERED', 'CANCELLED')),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_shipment_events",
		SQL: `CREATE TABLE IF NOT EXISTS shipment_events (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  shipment_id UUID        NOT NULL REFERENCES shipments (id) ON DELETE CASCADE,
  status      TEXT        NOT NULL,
  location    TEXT        NOT NULL DEFAULT '',
  note        TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_shipment_events_shipment_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_shipment_events_shipment_id ON shipment_events (shipment_id, created_at);`,
	},
	{
		Name: "create_table_lead_wallets",
		SQL: `CREATE TABLE IF NOT EXISTS lead_wallets (
  partner_id UUID        PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
  balance    BIGINT      NOT NULL DEFAULT 0 CHECK (balance >= 0),
  currency   TEXT        NOT NULL DEFAULT 'INR',
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_wallet_transactions",
		SQL: `CREATE TABLE IF NOT EXISTS wallet_transactions (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  partner_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  kind          TEXT        NOT NULL CHECK (kind IN ('CREDIT', 'DEBIT')),
  amount        BIGINT      NOT NULL CHECK (amount > 0),
  balance_after BIGINT      NOT NULL CHECK (balance_after >= 0),
  reference     TEXT        NOT NULL DEFAULT '',
  description   TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_wallet_transactions_partner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_wallet_transactions_partner_id ON wallet_transactions (partner_id, created_at);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id     UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  quote_id     UUID        REFERENCES quotes (id) ON DELETE SET NULL,
  shipment_id  UUID        REFERENCES shipments (id) ON DELETE SET NULL,
  doc_type     TEXT        NOT NULL CHECK (doc_type IN ('MSDS', 'COA', 'INVOICE', 'BOL', 'OTHER')),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  encrypted    BOOLEAN     NOT NULL DEFAULT false,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner_id ON documents (owner_id, created_at);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  kind       TEXT        NOT NULL,
  title      TEXT        NOT NULL,
  message    TEXT        NOT NULL,
  read       BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notifications_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id, read, created_at);`,
	},
	{
		Name: "create_table_payment_requests",
		SQL: `CREATE TABLE IF NOT EXISTS payment_requests (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  partner_id  UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  amount      BIGINT      NOT NULL CHECK (amount > 0),
  method      TEXT        NOT NULL,
  reference   TEXT        NOT NULL DEFAULT '',
  status      TEXT        NOT NULL CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED')),
  reviewed_by UUID        REFERENCES users (id),
  reviewed_at TIMESTAMPTZ,
  note        TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_payment_requests_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payment_requests_status ON payment_requests (status, created_at);`,
	},
}

const (
	qCreateLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	qApplied = `SELECT name FROM schema_migrations`
	qRecord  = `INSERT INTO schema_migrations (name) VALUES ($1)`
)

// Steps returns the names of all known migration steps in order.
func Steps() []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

// EnsureMigrated applies every step not yet recorded in schema_migrations.
// Each step runs in its own transaction together with its ledger row.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)
	log.Info("db migration check", "event", "db_migration_check", "status", "starting")

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		log.Error("db migration failed", "event", "db_migration_failed", "status", "error",
			"error_message", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return err
	}

	ran := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		stepStart := time.Now()
		if err := applyStep(ctx, db, step); err != nil {
			log.Error("db migration failed", "event", "db_migration_failed", "status", "error",
				"migration_step", step.Name, "error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds())
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		ran++
		log.Info("db migration step", "event", "db_migration_step", "status", "success",
			"migration_step", step.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	if ran == 0 {
		log.Info("schema already up to date, skipping migration", "event", "db_migration_skip",
			"status", "success", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}

	log.Info("db migration success", "event", "db_migration_success", "status", "success",
		"steps", ran, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	if _, err := db.ExecContext(ctx, qCreateLedger); err != nil {
		return nil, fmt.Errorf("failed to create sentinel table: %w", err)
	}
	rows, err := db.QueryContext(ctx, qApplied)
	if err != nil {
		return nil, fmt.Errorf("failed to read sentinel table: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to read sentinel table: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sentinel table: %w", err)
	}
	return applied, nil
}

func applyStep(ctx context.Context, db *sql.DB, step migrationStep) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, qRecord, step.Name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
