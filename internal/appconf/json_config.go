package appconf

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig mirrors the JSON configuration file format. DBPath is the
// SQLite database file; DataPath is an optional JSON seed file imported at
// startup. Fields omitted from the file receive the documented defaults.
type FileConfig struct {
	Port              int      `json:"port"`
	Env               string   `json:"env"`
	ApiKeys           []string `json:"apiKeys"`
	RateLimit         int      `json:"rateLimit"`
	DBPath            string   `json:"dbPath"`
	DataPath          string   `json:"dataPath"`
	NormalizeSchedule string   `json:"normalizeSchedule"`
}

const (
	DefaultPort              = 4000
	DefaultRateLimit         = 100
	DefaultDBPath            = "./popmatch.db"
	DefaultNormalizeSchedule = "0 0 * * *"
)

// LoadFromFile reads and validates a JSON config file, applying defaults for
// any unset fields.
func LoadFromFile(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *FileConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if len(c.ApiKeys) == 0 {
		c.ApiKeys = []string{"test"}
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	// DataPath is the optional JSON seed file; it stays empty unless set.
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.NormalizeSchedule == "" {
		c.NormalizeSchedule = DefaultNormalizeSchedule
	}
}

func (c *FileConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid config: port %d out of range", c.Port)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid config: rateLimit must not be negative")
	}
	return nil
}

// ToConfig converts a file config into the runtime Config.
func (c *FileConfig) ToConfig() Config {
	return Config{
		Port:      c.Port,
		Env:       EnvFlagToEnvironment(c.Env),
		ApiKeys:   c.ApiKeys,
		RateLimit: c.RateLimit,
	}
}
