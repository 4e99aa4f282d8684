package utils

import (
	"log"

	"github.com/sirupsen/logrus"
)

var (
	isVerbose bool
)

// SetVerbose toggles verbose output for both the plain logger and the
// structured logrus logger the engine packages use; without it the engine's
// debug-level classification traces stay hidden.
func SetVerbose(verbose bool) {
	isVerbose = verbose
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func IsVerbose() bool {
	return isVerbose
}

func Verbose(format string, args ...interface{}) {
	if isVerbose {
		log.Printf("[VERBOSE] "+format, args...)
	}
}

func Info(format string, args ...interface{}) {
	log.Printf("[INFO] "+format, args...)
}
