// Package logger, uygulama genelinde kullanılan logrus logger'ını kurar.
package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/akinalp/mblog/config"
)

// New, config'e göre seviye ve formatı ayarlanmış bir logger döner.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: expected text or json", cfg.Format)
	}

	return log, nil
}

// Component, "component" alanı eklenmiş alt logger döner.
func Component(log logrus.FieldLogger, name string) logrus.FieldLogger {
	return log.WithField("component", name)
}
