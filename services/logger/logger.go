package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// ZapLogger implement Logger interface trên zap
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger tạo logger theo level ("debug", "info", "error"...) và format ("json" hoặc "console").
func NewZapLogger(level, format string) (*ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: z.Sugar()}, nil
}

// NewFromZap bọc một *zap.Logger có sẵn.
func NewFromZap(z *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: z.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// NewNop trả về logger bỏ qua mọi thông điệp, dùng trong test.
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// Info log thông tin
func (l *ZapLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Error log lỗi
func (l *ZapLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Debug log debug
func (l *ZapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Zap trả về *zap.Logger bên dưới cho các middleware cần log có cấu trúc.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
