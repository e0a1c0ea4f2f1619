package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger. Verbose runs log debug output to stdout;
// otherwise only warnings and errors are written, to stderr.
func New(verbose bool, stdout, stderr io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	sink := stderr
	level := zapcore.WarnLevel
	if verbose {
		sink = stdout
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(sink),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
