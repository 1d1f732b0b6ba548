package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

func NewLogger(env ENV) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	if env.IsProduction() {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
		}
	} else {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	level, err := logrus.ParseLevel(env.LogLevel)
	if err != nil {
		log.Warnf("NewLogger: unknown LOG_LEVEL %q, falling back to info", env.LogLevel)
		level = logrus.InfoLevel
	}
	log.Level = level

	return log
}
