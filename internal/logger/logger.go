package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Packages log through it with a
// "component" field so output can be filtered per subsystem.
var Log = logrus.New()

// Init configures Log from the environment. It is called once from main
// (and from TestMain in tests).
//
//	LOG_LEVEL  logrus level name, default "info"
//	LOG_FORMAT "json" for structured output, anything else for text
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput is Init with an explicit writer. Log is reconfigured in
// place so entries handed out by Component earlier follow the new settings.
func InitWithOutput(w io.Writer) {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(w)
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
