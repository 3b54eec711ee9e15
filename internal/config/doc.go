// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tarefas/tarefas.toml or OS-specific config directory)
// 3. Project config file (tarefas.toml or .tarefas.toml in the working directory)
// 4. .env file in the working directory
// 5. Environment variables (TAREFAS_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// Values from .env never override variables already set in the environment.
//
// User-level config locations:
// - ~/.tarefas/tarefas.toml (preferred)
// - Windows: %APPDATA%\tarefas\tarefas.toml
// - macOS: ~/Library/Application Support/tarefas/tarefas.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tarefas/tarefas.toml or ~/.config/tarefas/tarefas.toml
//
// Project-level config locations (overrides user config):
// - ./tarefas.toml (preferred)
// - ./.tarefas.toml
package config
