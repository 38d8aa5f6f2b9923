package schema

// Custom string types for type safety.
type (
	// Standard identifies which metric schema and scoring oracle apply.
	Standard string

	// Tab represents a top-level section of the popup.
	Tab string

	// Severity represents a CVSS qualitative severity band.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// RecordFormat represents the encoding used for the persisted popup record.
	RecordFormat string
)

// All scoring standards supported.
const (
	V3 Standard = "cvss3" // CVSS v3.1 (default)
	V4 Standard = "cvss4" // CVSS v4.0
)

// Vector prefixes per standard.
const (
	V3Prefix = "CVSS:3.1/"
	V4Prefix = "CVSS:4.0/"
)

// All popup tabs supported.
const (
	TabCVSS3 Tab = "cvss3" // default
	TabCVSS4 Tab = "cvss4"
	TabAbout Tab = "about"
)

// All severity bands, plus the sentinel used for invalid evaluations.
const (
	SeverityNone     Severity = "None"
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
	SeverityNA       Severity = "N/A"
)

// Sentinel display values for an evaluation the oracle rejected.
const (
	ErrorScore    = "Error"
	InvalidVector = "Invalid metrics"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All persistence backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All record formats supported.
const (
	JSONFormat    RecordFormat = "json" // default
	MsgpackFormat RecordFormat = "msgpack"
)

// RecordKey is the key under which the popup record is persisted.
const RecordKey = "cvss_popup_state"

// RecordVersion is bumped whenever the persisted record layout changes.
const RecordVersion = 1

// AllStandards lists every standard in tab order.
var AllStandards = []Standard{V3, V4}

// AllTabs lists every tab in display order.
var AllTabs = []Tab{TabCVSS3, TabCVSS4, TabAbout}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRecordFormats lists all valid record formats.
var ValidRecordFormats = map[RecordFormat]struct{}{
	JSONFormat:    {},
	MsgpackFormat: {},
}

// ValidTabs lists all valid tabs.
var ValidTabs = map[Tab]struct{}{
	TabCVSS3: {},
	TabCVSS4: {},
	TabAbout: {},
}
