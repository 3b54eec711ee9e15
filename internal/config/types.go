package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string // Config files that were read, in load order
}

// Default values.
const (
	DefaultTitle       = "Bem-vindo ao App ADS"
	DefaultSubtitle    = "Lista de tarefas no terminal"
	DefaultPlaceholder = "O que precisa ser feito?"
	DefaultLogDir      = "~/.tarefas/logs"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultAltScreen   = true
)

// Config holds the full configuration for tarefas.
type Config struct {
	// Screen
	Title       string `toml:"title"`
	Subtitle    string `toml:"subtitle"`
	Placeholder string `toml:"placeholder"`
	AltScreen   bool   `toml:"alt_screen"`

	// Optional JSON file with tasks to start from
	SeedFile string `toml:"seed_file"`

	// Logging configuration
	LogDir        string `toml:"log_dir"` // Empty disables session logs
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// field describes one configurable value and the names it goes by in
// each source.
type field struct {
	key   string // TOML key and source-tracking name
	env   string
	flag  string
	usage string
	ptr   func(*Config) interface{} // *string or *bool
}

var fields = []field{
	{"title", "TAREFAS_TITLE", "title", "Screen title", func(c *Config) interface{} { return &c.Title }},
	{"subtitle", "TAREFAS_SUBTITLE", "subtitle", "Screen subtitle", func(c *Config) interface{} { return &c.Subtitle }},
	{"placeholder", "TAREFAS_PLACEHOLDER", "placeholder", "Input placeholder text", func(c *Config) interface{} { return &c.Placeholder }},
	{"alt_screen", "TAREFAS_ALT_SCREEN", "alt-screen", "Use the terminal alternate screen", func(c *Config) interface{} { return &c.AltScreen }},
	{"seed_file", "TAREFAS_SEED", "seed", "JSON file with tasks to start from", func(c *Config) interface{} { return &c.SeedFile }},
	{"log_dir", "TAREFAS_LOG_DIR", "log-dir", "Session log directory (empty disables logs)", func(c *Config) interface{} { return &c.LogDir }},
	{"log_level", "TAREFAS_LOG_LEVEL", "log-level", "Log level (debug, info, warn, error)", func(c *Config) interface{} { return &c.LogLevel }},
	{"log_format", "TAREFAS_LOG_FORMAT", "log-format", "Log format (text, json, logfmt)", func(c *Config) interface{} { return &c.LogFormat }},
	{"log_timestamps", "TAREFAS_LOG_TIMESTAMPS", "log-timestamps", "Show timestamps in logs", func(c *Config) interface{} { return &c.LogTimestamps }},
	{"log_caller", "TAREFAS_LOG_CALLER", "log-caller", "Show caller location in logs", func(c *Config) interface{} { return &c.LogCaller }},
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	return keys
}

// Value returns the current value of the named field as a string.
func (c *Config) Value(key string) (string, bool) {
	for _, f := range fields {
		if f.key != key {
			continue
		}
		switch p := f.ptr(c).(type) {
		case *string:
			return *p, true
		case *bool:
			if *p {
				return "true", true
			}
			return "false", true
		}
	}
	return "", false
}

// Keys returns the configurable field names in display order.
func Keys() []string {
	return configFields()
}
