package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel           string  // sets the log level (zap log level values)
	LogFormat          string  // text vs json
	LogFilter          string  // zapfilter rules, e.g. "debug:handicap* info:*"
	CoursesFile        string  // path to course data file (embedded data if empty)
	Club               string  // club to use (default club of the course data if empty)
	StoreType          string  // storage backend (memory, sqlite, postgres, nats)
	StoreDSN           string  // connection string/path for the storage backend
	MinIndex           float64 // lowest accepted handicap index
	MaxIndex           float64 // highest accepted handicap index
	WaitForServices    string  // duration to wait for other services to be ready
	MigrationSourceURL string  // location of migration files (embedded if empty)
)
