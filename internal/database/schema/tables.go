package schema

// TableDefinitions contains all the SQL statements to create the engine
// tables. Don't put REFERENCES and don't put CHECK constraints in the
// CREATE TABLE statements.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS workflows (
		id VARCHAR(36) PRIMARY KEY,
		owner_id VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workflow_triggers (
		id VARCHAR(36) PRIMARY KEY,
		workflow_id VARCHAR(36) NOT NULL,
		type VARCHAR(50) NOT NULL,
		config JSONB DEFAULT '{}'::jsonb,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workflow_conditions (
		id VARCHAR(36) PRIMARY KEY,
		workflow_id VARCHAR(36) NOT NULL,
		type VARCHAR(50) NOT NULL,
		operator VARCHAR(20) NOT NULL,
		value TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workflow_actions (
		id VARCHAR(36) PRIMARY KEY,
		workflow_id VARCHAR(36) NOT NULL,
		type VARCHAR(50) NOT NULL,
		config JSONB DEFAULT '{}'::jsonb,
		execution_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS executions (
		id VARCHAR(36) PRIMARY KEY,
		workflow_id VARCHAR(36) NOT NULL,
		trigger_type VARCHAR(50) NOT NULL,
		trigger_data JSONB,
		status VARCHAR(20) NOT NULL,
		actions_executed INTEGER NOT NULL DEFAULT 0,
		actions_total INTEGER NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		error TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS action_logs (
		id VARCHAR(36) PRIMARY KEY,
		execution_id VARCHAR(36) NOT NULL,
		action_id VARCHAR(36) NOT NULL,
		action_type VARCHAR(50) NOT NULL,
		action_config JSONB,
		status VARCHAR(20) NOT NULL,
		result JSONB,
		error TEXT,
		executed_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_followups (
		id VARCHAR(36) PRIMARY KEY,
		message_id VARCHAR(36) NOT NULL,
		workflow_id VARCHAR(36),
		subject_id VARCHAR(36),
		scheduled_for TIMESTAMP NOT NULL,
		days_after_original INTEGER NOT NULL,
		status VARCHAR(20) NOT NULL,
		executed_at TIMESTAMP,
		result JSONB,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subjects (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		lead_stage VARCHAR(20) NOT NULL DEFAULT 'new',
		tags TEXT[] NOT NULL DEFAULT '{}',
		engagement_score INTEGER NOT NULL DEFAULT 0,
		last_contacted_at TIMESTAMP,
		fields JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id VARCHAR(36) PRIMARY KEY,
		subject_id VARCHAR(36),
		from_address VARCHAR(255),
		to_address VARCHAR(255),
		subject TEXT,
		open_count INTEGER NOT NULL DEFAULT 0,
		click_count INTEGER NOT NULL DEFAULT 0,
		reply_count INTEGER NOT NULL DEFAULT 0,
		sent_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS templates (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS followup_tasks (
		id VARCHAR(36) PRIMARY KEY,
		subject_id VARCHAR(36) NOT NULL,
		title VARCHAR(255) NOT NULL,
		due_date TIMESTAMP NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'open',
		created_at TIMESTAMP NOT NULL
	)`,
}

// IndexDefinitions contains the indexes the engine's hot paths rely on
var IndexDefinitions = []string{
	`CREATE INDEX IF NOT EXISTS idx_workflow_triggers_type ON workflow_triggers(type, workflow_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workflow_actions_order ON workflow_actions(workflow_id, execution_order, created_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_action_logs_execution ON action_logs(execution_id)`,
	`CREATE INDEX IF NOT EXISTS idx_followups_due ON scheduled_followups(status, scheduled_for)`,
	`CREATE INDEX IF NOT EXISTS idx_followups_message ON scheduled_followups(message_id, status)`,
}
