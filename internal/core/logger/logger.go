package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the development logger. Unknown levels fall back to info.
func NewLogger(level string) *zap.Logger {
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := loggerConfig.Build()
	if nil != err {
		panic(err)
	}

	return logger
}
