package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// ZapLogger é uma implementação do contrato de Logger que usa o logger do Uber.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

var levelMap = map[contracts.LogLevel]zapcore.Level{
	contracts.InfoLevel:  zapcore.InfoLevel,
	contracts.DebugLevel: zapcore.DebugLevel,
	contracts.ErrorLevel: zapcore.ErrorLevel,
	contracts.WarnLevel:  zapcore.WarnLevel,
	contracts.FatalLevel: zapcore.FatalLevel,
}

// NewZapLogger cria um novo logger do Uber.
func NewZapLogger() contracts.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, _ := cfg.Build(zap.AddCallerSkip(1))
	return &ZapLogger{logger: logger, level: cfg.Level}
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.logger.Info(msg, toZapFields(fields)...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.logger.Error(msg, toZapFields(fields)...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.logger.Debug(msg, toZapFields(fields)...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.logger.Warn(msg, toZapFields(fields)...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.logger.Fatal(msg, toZapFields(fields)...)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	if zl, ok := levelMap[level]; ok {
		z.level.SetLevel(zl)
	}
}

func toZapFields(fields []contracts.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(zapField); ok {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field directly on top of zap.Field.
type zapField struct {
	field zap.Field
}

func (f zapField) Int(key string, val int) contracts.Field {
	return zapField{zap.Int(key, val)}
}

func (f zapField) Float64(key string, val float64) contracts.Field {
	return zapField{zap.Float64(key, val)}
}

func (f zapField) String(key string, val string) contracts.Field {
	return zapField{zap.String(key, val)}
}

func (f zapField) Error(key string, val error) contracts.Field {
	return zapField{zap.NamedError(key, val)}
}
