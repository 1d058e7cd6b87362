package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		code VARCHAR(20) UNIQUE NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(100) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL,
		team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Single authoritative row for the current competition phase.
	`CREATE TABLE IF NOT EXISTS system_status (
		id SMALLINT PRIMARY KEY CHECK (id = 1),
		phase VARCHAR(20) NOT NULL DEFAULT 'pre_event',
		changed_by UUID REFERENCES users(id) ON DELETE SET NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`INSERT INTO system_status (id, phase) VALUES (1, 'pre_event')
		ON CONFLICT (id) DO NOTHING`,

	// Singleton scoring configuration; version is bumped on every update
	// and checked optimistically by writers.
	`CREATE TABLE IF NOT EXISTS scoring_config (
		id SMALLINT PRIMARY KEY CHECK (id = 1),
		points_per_validated_proposal INTEGER NOT NULL DEFAULT 1,
		points_per_product INTEGER NOT NULL DEFAULT 1,
		version INTEGER NOT NULL DEFAULT 1,
		updated_by UUID REFERENCES users(id) ON DELETE SET NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`INSERT INTO scoring_config (id) VALUES (1)
		ON CONFLICT (id) DO NOTHING`,

	`CREATE TABLE IF NOT EXISTS proposals (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		team_number INTEGER NOT NULL,
		client_name VARCHAR(200) NOT NULL,
		seller_name VARCHAR(100) NOT NULL,
		value NUMERIC(12,2) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		product_qty INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'submitted',
		submitted_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		validated_at TIMESTAMP WITH TIME ZONE,
		validated_by UUID REFERENCES users(id) ON DELETE SET NULL,
		rejection_reason TEXT,
		sale_value NUMERIC(12,2),
		sale_product_qty INTEGER NOT NULL DEFAULT 0,
		sale_validated BOOLEAN NOT NULL DEFAULT FALSE,
		sale_rejection_reason TEXT,
		sold_at TIMESTAMP WITH TIME ZONE,
		bonus_wines_world_line BOOLEAN NOT NULL DEFAULT FALSE,
		bonus_wines_single_lot BOOLEAN NOT NULL DEFAULT FALSE,
		bonus_sparkling_vintage BOOLEAN NOT NULL DEFAULT FALSE,
		bonus_sparkling_premium BOOLEAN NOT NULL DEFAULT FALSE,
		bonus_acceleration BOOLEAN NOT NULL DEFAULT FALSE,
		points INTEGER NOT NULL DEFAULT 0,
		bonus_points INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(team_id, team_number)
	)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		proposal_id UUID NOT NULL REFERENCES proposals(id) ON DELETE CASCADE UNIQUE,
		product_qty INTEGER NOT NULL DEFAULT 0,
		total_value NUMERIC(12,2) NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		points_generated INTEGER NOT NULL DEFAULT 0,
		validated_at TIMESTAMP WITH TIME ZONE,
		validated_by UUID REFERENCES users(id) ON DELETE SET NULL,
		rejection_reason TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS rankings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		phase VARCHAR(20) NOT NULL,
		position INTEGER NOT NULL,
		points INTEGER NOT NULL DEFAULT 0,
		proposals_submitted INTEGER NOT NULL DEFAULT 0,
		proposals_validated INTEGER NOT NULL DEFAULT 0,
		proposals_sold INTEGER NOT NULL DEFAULT 0,
		total_sale_value NUMERIC(15,2) NOT NULL DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(team_id, phase)
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_team_id ON users(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_team_id ON proposals(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_status ON proposals(status)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_proposal_id ON sales(proposal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_status ON sales(status)`,
	`CREATE INDEX IF NOT EXISTS idx_rankings_phase ON rankings(phase)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
