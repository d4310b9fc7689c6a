package bracket

// Version constants for the model schema and the tool.
const (
	// SchemaVersion is the journal schema version, stamped into the
	// database as PRAGMA user_version.
	SchemaVersion = 1

	// ToolVersion is the bracket builder version.
	ToolVersion = "0.1.0"
)
