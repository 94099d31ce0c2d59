package memberkit

import (
	"github.com/fernandezvara/dbkit"
)

// MigrationService provides migration management functionality as an extension to Store
type MigrationService struct {
	*Store
}

// NewMigrationService creates a new migration service extension
func NewMigrationService(store *Store) *MigrationService {
	return &MigrationService{Store: store}
}

// Migrations returns all database migrations required for MemberKit.
// Use dbkit.Migrate(ctx, service.Migrations()) to run migrations.
func (ms *MigrationService) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "memberkit-001",
			Description: "Create project_members table",
			SQL: `
                CREATE TABLE IF NOT EXISTS project_members (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    project_id TEXT NOT NULL,
                    user_id TEXT NOT NULL,
                    platform_id TEXT NOT NULL,
                    role_id TEXT NOT NULL,
                    created TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    CONSTRAINT project_members_triple_key UNIQUE (project_id, user_id, platform_id)
                )`,
		},
		{
			ID:          "memberkit-002",
			Description: "Create keyset listing index on project_members",
			SQL: `
                CREATE INDEX IF NOT EXISTS idx_project_members_listing
                    ON project_members (project_id, created, id)`,
		},
		{
			ID:          "memberkit-003",
			Description: "Create project_roles table",
			SQL: `
                CREATE TABLE IF NOT EXISTS project_roles (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    permissions TEXT[] NOT NULL DEFAULT '{}',
                    is_default BOOLEAN NOT NULL DEFAULT false,
                    created TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "memberkit-004",
			Description: "Seed default project roles",
			SQL: `
                INSERT INTO project_roles (name, permissions, is_default) VALUES
                    ('admin',    '{"*"}',                                   true),
                    ('editor',   '{"flows.*","members.read"}',              true),
                    ('operator', '{"flows.read","flows.run","members.read"}', true),
                    ('viewer',   '{"flows.read","members.read"}',           true)
                ON CONFLICT (name) DO NOTHING`,
		},
	}
}
