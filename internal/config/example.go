package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tarefas configuration file
# Values can be overridden by .env, TAREFAS_* environment variables or CLI flags

# Screen header
title = "Bem-vindo ao App ADS"
subtitle = "Lista de tarefas no terminal"

# Placeholder shown in the empty input field
placeholder = "O que precisa ser feito?"

# Draw on the terminal alternate screen
alt_screen = true

# Optional JSON file with tasks to start from (read only, never written)
# seed_file = "tarefas.seed.json"

# Session log directory (supports ~ expansion and %VAR% on Windows).
# Set to "" to disable session logs.
log_dir = "~/.tarefas/logs"

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = true
log_caller = false
`
}
