package event

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Command output goes to stdout; everything
// diagnostic goes through Log on stderr.
var (
	Log *log.Logger
)

// Fields type, used to pass to `WithFields`. Forwarded from logrus library
type Fields = log.Fields

func init() {
	Log = &log.Logger{
		Out:          os.Stderr,
		Formatter:    &log.TextFormatter{DisableColors: false, FullTimestamp: true},
		Hooks:        make(log.LevelHooks),
		Level:        log.InfoLevel,
		ExitFunc:     os.Exit,
		ReportCaller: false,
	}
}

// ConfigureLogging switches between debug and info verbosity.
func ConfigureLogging(debug bool) {
	Log.SetLevel(log.InfoLevel)
	if debug {
		Log.SetLevel(log.DebugLevel)
	}
}
