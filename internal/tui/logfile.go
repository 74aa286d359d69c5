package tui

import (
	"os"
	"path/filepath"
)

// Environment variables controlling the file log
const (
	EnvLogFile       = "PRFLOW_LOG_FILE"
	EnvLogMaxSize    = "PRFLOW_LOG_MAX_SIZE"
	EnvLogMaxBackups = "PRFLOW_LOG_MAX_BACKUPS"
	EnvLogMaxAge     = "PRFLOW_LOG_MAX_AGE"
)

// GetLogFilePath returns the path to the log file.
// If PRFLOW_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.prflow/logs/prflow.log
func GetLogFilePath() string {
	if customPath := os.Getenv(EnvLogFile); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "prflow.log"
	}

	return filepath.Join(homeDir, ".prflow", "logs", "prflow.log")
}
