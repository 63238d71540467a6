package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the console logger used by the server and the CLI.
// When file is non-empty the output is duplicated into it.
func NewLogger(level, file string) *zap.Logger {
	atomicLevel := zap.NewAtomicLevelAt(zap.DebugLevel)
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		atomicLevel = zap.NewAtomicLevelAt(lvl)
	}

	outputs := []string{"stdout"}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err == nil {
			outputs = append(outputs, file)
		}
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            atomicLevel,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
