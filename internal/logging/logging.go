package logging

import (
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// Setup configures a logger the way every binary in this repo does it:
// colored text on the terminal, optionally mirrored to a rotated JSON
// log file.
func Setup(log *logrus.Logger, debug bool, logFile string) error {
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}
