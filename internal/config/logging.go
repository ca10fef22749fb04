package config

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the log settings to the standard logrus logger
func ConfigureLogging(lc LogConfig) {
	if strings.EqualFold(lc.Format, "text") {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}

	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		log.WithField("level", lc.Level).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
