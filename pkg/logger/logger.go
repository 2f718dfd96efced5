package logger

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
// Config 控制日志器构建
type Config struct {
	Level      string // debug / info / warn / error
	File       string // 日志文件路径，空则只输出到控制台
	Production bool   // 生产模式使用 JSON 编码
}

// NewLogger builds a zap logger writing to console and, when configured,
// a log file.
// NewLogger 构建 zap 日志器，输出到控制台及可选的日志文件
func NewLogger(c *Config) (*zap.Logger, error) {

	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.Set(c.Level); err != nil {
			return nil, errors.Wrap(err, "logger")
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if c.Production {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			level,
		))
	} else {
		consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig),
			zapcore.Lock(os.Stdout),
			level,
		))
	}

	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "logger")
		}
		f, err := os.OpenFile(c.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Wrap(err, "logger")
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.Lock(f),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
