package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg = newLogger("info")

func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Init replaces the shared logger; call once from main after config is loaded.
func Init(level string) *logrus.Logger {
	logg = newLogger(level)
	return logg
}

// Module returns an entry tagged with the module name.
func Module(name string) *logrus.Entry {
	return logg.WithField("module", name)
}

func LogError(entry *logrus.Entry, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	entry.WithFields(fields).Error(err.Error())
}
