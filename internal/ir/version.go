package ir

// Version constants for snapshots and the tool.
const (
	// SnapshotVersion is the Automaton snapshot schema version.
	SnapshotVersion = "1"

	// ToolVersion is the chartrie version.
	ToolVersion = "0.1.0"
)
