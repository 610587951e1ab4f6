package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by the host entry point.
const (
	EnvBackend = "SIMPLEOS_BACKEND"
	EnvScale   = "SIMPLEOS_SCALE"
	EnvTPS     = "SIMPLEOS_TPS"
	EnvPrompt  = "SIMPLEOS_PROMPT"
	EnvBanner  = "SIMPLEOS_BANNER"
	EnvLog     = "SIMPLEOS_LOG"
	EnvDump    = "SIMPLEOS_DUMP"
)

// LoadEnvFile adds the KEY=VALUE pairs in path to the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// EnvString returns the value of key, or def when it is unset or empty.
func EnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt is EnvString for integers; unparsable values yield def.
func EnvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// EnvBool is EnvString for booleans; unparsable values yield def.
func EnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
