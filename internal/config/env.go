package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

// readDotEnv parses path into a map. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return values, nil
}

// loadFromEnv overrides config from .env values and environment variables.
// Variables set in the process environment win over .env entries.
func loadFromEnv(cfg *Config, dotenv map[string]string, sources map[string]ConfigSource) {
	for _, f := range fields {
		v, source, ok := lookupEnv(f.env, dotenv)
		if !ok {
			continue
		}
		switch p := f.ptr(cfg).(type) {
		case *string:
			*p = v
		case *bool:
			*p = boolFromString(v)
		}
		if sources != nil {
			sources[f.key] = source
		}
	}
}

func lookupEnv(key string, dotenv map[string]string) (string, ConfigSource, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, SourceEnv, true
	}
	if v, ok := dotenv[key]; ok {
		return v, SourceDotEnv, true
	}
	return "", "", false
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
