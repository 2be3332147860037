package app

import (
	"io"
	"os"
	"time"

	"github.com/Bartuster/todo-backend/internal/config"

	"github.com/rs/zerolog"
)

// NewLogger builds the application logger. Outside prod it writes
// human-readable console output at debug level; in prod, JSON at info.
func NewLogger(cfg config.Config) zerolog.Logger {
	zerolog.TimestampFieldName = "timestamp"

	w := io.Writer(os.Stdout)
	level := zerolog.InfoLevel
	if cfg.App.Env != "prod" {
		cw := zerolog.NewConsoleWriter()
		cw.Out = os.Stdout
		cw.TimeFormat = time.DateTime
		w = cw
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
