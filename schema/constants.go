package schema

// Custom string types for type safety.
type (
	// RiskLabel represents an ordered risk tier assigned by clustering.
	RiskLabel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for storage.
	DatabaseBackend string
)

// All risk labels, ordered by ascending mean incident density.
const (
	LowRisk      RiskLabel = "LOW"
	MediumRisk   RiskLabel = "MEDIUM"
	HighRisk     RiskLabel = "HIGH"
	VeryHighRisk RiskLabel = "VERY_HIGH"

	// UnknownRisk is reported when no scored segment matches a query point.
	UnknownRisk RiskLabel = "UNKNOWN"
)

// LabelOrder is the ascending label sequence used when mapping density-ordered
// clusters to tiers. Cluster counts beyond its length clamp to the last entry.
var LabelOrder = []RiskLabel{LowRisk, MediumRisk, HighRisk, VeryHighRisk}

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Table names in the relational schema.
const (
	SegmentsTable = "street_segments"
	ReportsTable  = "crime_reports"
	OffensesTable = "report_offenses"
	RiskTable     = "street_segment_risk"
)

// Hours of day treated as night when tagging incidents: 22:00 through 05:59.
const (
	NightStartHour = 22
	NightEndHour   = 5
)

// Feature-engineering floors applied to segment length before computing
// incident density. Missing lengths default to DefaultSegmentLength and every
// length is clamped to at least MinEffectiveLength meters.
const (
	DefaultSegmentLength = 100.0
	MinEffectiveLength   = 50.0
)
