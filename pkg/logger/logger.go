package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the global zerolog logger for one run and returns the
// rotating file writer (nil when no log file is configured) so the caller can
// close it, together with the run id attached to every log line.
func InitLogger(settings config.Settings) (*lumberjack.Logger, string) {
	var logRotate *lumberjack.Logger
	var output io.Writer

	level := zerolog.WarnLevel
	if settings.Debug {
		level = zerolog.DebugLevel
	}

	if settings.LogFile != "" {
		// Set up lumberjack logger for log rotation
		logRotate = &lumberjack.Logger{
			Filename:   settings.LogFile,
			MaxSize:    50, // Max size in MB before rotation
			MaxBackups: 5,  // Max number of backup files
			MaxAge:     30, // Max age in days
			Compress:   true,
		}
		output = zerolog.MultiLevelWriter(
			&levelWriter{Writer: PrettyWriter(os.Stderr), min: level},
			PrettyWriter(logRotate),
		)
		level = zerolog.DebugLevel
	} else {
		output = PrettyWriter(os.Stderr)
	}

	zerolog.SetGlobalLevel(level)

	runID := uuid.NewString()
	log.Logger = zerolog.New(output).With().Timestamp().Str("run_id", runID).Logger()

	return logRotate, runID
}

// levelWriter drops entries below min so the console stays quiet while the
// log file keeps debug output.
type levelWriter struct {
	io.Writer
	min zerolog.Level
}

func (w *levelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < w.min {
		return len(p), nil
	}
	return w.Write(p)
}

// PrettyWriter returns a zerolog.ConsoleWriter in the bracketed level format.
func PrettyWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		TimeFormat:   time.RFC3339,
		TimeLocation: time.Local,
		FormatLevel: func(i interface{}) string {
			return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprint(i)
		},
		FormatFieldName: func(i interface{}) string {
			return "(" + fmt.Sprint(i) + ")"
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprint(i)
		},
	}
}

// Bootstrap installs a quiet console logger for the time before the
// configuration, and with it the real log settings, is known.
func Bootstrap() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = zerolog.New(PrettyWriter(os.Stderr)).With().Timestamp().Logger()
}
