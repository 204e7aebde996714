// Package logging provides the package-level structured logger used for
// device-construction diagnostics. Modeled on itohio/EasyRobot's
// pkg/logger: a single console-writer zerolog.Logger with caller info,
// never consulted on the elementwise/matmul hot path.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the shared tensorcore logger.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Caller().Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
