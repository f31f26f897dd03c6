package logger

import (
	"github.com/fatih/color"        // Colored console output
	"github.com/mattn/go-colorable" // ANSI-aware stderr writer, needed for Windows consoles
)

// Colorized printing functions for the different log levels.
// They behave like fmt.Printf. Info and Warn go to stdout, Error goes to stderr
// so that failures stay visible when stdout is piped.

// Info logs informational messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red on stderr.
var Error = func(format string, a ...any) {
	errorColor.Fprintf(stderr, format, a...)
}

// Debug logs debug messages in cyan once Init(true) has been called.
// Until then it is a no-op so packages can call it unconditionally.
var Debug = func(format string, a ...any) {}

var (
	errorColor = color.New(color.FgRed)
	stderr     = colorable.NewColorableStderr()
)

// Init enables or disables debug logging.
// It is called from the root command's PersistentPreRun with the value of --debug.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
