package logging

import (
	"io"
	"os"
	"strings"

	"bbj-ledger/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var writer io.Writer = os.Stdout

// Init configures the global zerolog logger. When cfg.File is set, output is
// redirected to a size-limited file so long-running deployments don't fill
// the disk.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	writer = os.Stdout
	if cfg.File != "" {
		if w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB); err == nil {
			writer = w
		}
	}

	output := writer
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: writer}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer exposes the raw log destination for loggers that bypass zerolog,
// such as the HTTP request logger.
func Writer() io.Writer {
	return writer
}
