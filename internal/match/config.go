package match

import "popmatch.poplocal.org/internal/appconf"

// Config holds the settings the Manager needs at startup.
type Config struct {
	// DBPath is the SQLite database path, or :memory:.
	DBPath string
	// DataPath optionally points at a JSON seed file loaded at startup.
	DataPath string
	Env      appconf.Environment
	Verbose  bool
	// NormalizeSchedule is the cron expression for the nightly date
	// normalization job. Empty disables the job.
	NormalizeSchedule string
}
