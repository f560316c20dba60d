package options

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions
type LogOptions struct {
	Verbose bool
	File    string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug output.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Write logs to this file instead of stderr.")
}

// Logger builds the zap logger for a command. With quiet set and no log
// file, logging is disabled; the terminal UI owns the screen.
func (o *LogOptions) Logger(quiet bool) (*zap.Logger, error) {
	if quiet && o.File == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if o.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if o.File != "" {
		cfg.OutputPaths = []string{o.File}
		cfg.ErrorOutputPaths = []string{o.File}
	}
	return cfg.Build()
}
