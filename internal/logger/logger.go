// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"
	"strings"

	"animeapi/provider/internal/config"

	log "github.com/sirupsen/logrus"
)

// Setup applies level and format. Logs go to stderr so stdout stays
// reserved for command output.
func Setup(cfg config.LogConfig) {
	log.SetOutput(os.Stderr)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
