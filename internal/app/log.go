package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LogFileName is the log file inside the data directory. The TUI owns
// stdout, so nothing is logged to the terminal.
const LogFileName = "workbridge.log"

// newLogger opens the log file and builds a logger for cfg
func newLogger(cfg *Config) (*logrus.Logger, io.Closer, error) {
	path := filepath.Join(cfg.DataDir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	log.SetLevel(parseLevel(cfg))

	return log, f, nil
}

func parseLevel(cfg *Config) logrus.Level {
	if cfg.Debug {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
