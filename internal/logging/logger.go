package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EngineLogger provides structured logging for the popularity engine.
type EngineLogger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, err error, fields ...zap.Field)
	Fatal(msg string, err error, fields ...zap.Field)
	With(fields ...zap.Field) EngineLogger
	Sync() error
}

// Logger implements EngineLogger using zap.
type Logger struct {
	logger *zap.Logger
}

// LoggerConfig defines logger configuration.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	Development bool   `mapstructure:"development"`
}

// NewLogger creates a new structured logger based on configuration.
func NewLogger(config LoggerConfig) (EngineLogger, error) {
	level, err := parseLogLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var encoderConfig zapcore.EncoderConfig
	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(config.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console", "":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", config.Format)
	}

	var writeSyncer zapcore.WriteSyncer
	switch strings.ToLower(config.Output) {
	case "stdout", "":
		writeSyncer = zapcore.AddSync(os.Stdout)
	case "stderr":
		writeSyncer = zapcore.AddSync(os.Stderr)
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)

	var options []zap.Option
	if config.Development {
		options = append(options, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		options = append(options, zap.AddCaller())
	}

	return &Logger{logger: zap.New(core, options...)}, nil
}

// NewDefaultLogger creates a logger with sensible defaults for development.
func NewDefaultLogger() EngineLogger {
	config := LoggerConfig{
		Level:       "info",
		Format:      "console",
		Output:      "stdout",
		Development: true,
	}

	logger, err := NewLogger(config)
	if err != nil {
		zapLogger, _ := zap.NewDevelopment()
		return &Logger{logger: zapLogger}
	}

	return logger
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, err error, fields ...zap.Field) {
	allFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		allFields = append(allFields, zap.Error(err))
	}
	allFields = append(allFields, fields...)
	l.logger.Error(msg, allFields...)
}

func (l *Logger) Fatal(msg string, err error, fields ...zap.Field) {
	allFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		allFields = append(allFields, zap.Error(err))
	}
	allFields = append(allFields, fields...)
	l.logger.Fatal(msg, allFields...)
}

func (l *Logger) With(fields ...zap.Field) EngineLogger {
	return &Logger{logger: l.logger.With(fields...)}
}

func (l *Logger) Sync() error {
	return l.logger.Sync()
}

func parseLogLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

// LoggerFields provides common field constructors for structured logging.
type LoggerFields struct{}

// Fields provides convenient field constructors.
var Fields LoggerFields

func (LoggerFields) String(key, value string) zap.Field { return zap.String(key, value) }
func (LoggerFields) Int(key string, value int) zap.Field { return zap.Int(key, value) }
func (LoggerFields) Int64(key string, value int64) zap.Field { return zap.Int64(key, value) }
func (LoggerFields) Float64(key string, value float64) zap.Field { return zap.Float64(key, value) }
func (LoggerFields) Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

func (LoggerFields) Duration(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case int64:
		return zap.Duration(key, time.Duration(v))
	case time.Duration:
		return zap.Duration(key, v)
	default:
		return zap.String(key, fmt.Sprintf("%v", value))
	}
}

func (LoggerFields) Error(err error) zap.Field        { return zap.Error(err) }
func (LoggerFields) Any(key string, value interface{}) zap.Field { return zap.Any(key, value) }

// Database creates fields describing the active database connection target.
func (LoggerFields) Database(host string, port int, database string) []zap.Field {
	return []zap.Field{
		zap.String("db_host", host),
		zap.Int("db_port", port),
		zap.String("db_name", database),
	}
}

// Stage creates fields describing a pipeline stage's progress.
func (LoggerFields) Stage(name string, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("stage", name),
		zap.Duration("elapsed", elapsed),
	}
}

// Title creates fields identifying a title row for diagnostic logging.
func (LoggerFields) Title(titleID int64, tconst string) []zap.Field {
	return []zap.Field{
		zap.Int64("title_id", titleID),
		zap.String("tconst", tconst),
	}
}

// Actor creates fields identifying an actor row for diagnostic logging.
func (LoggerFields) Actor(actorID int64, nconst string) []zap.Field {
	return []zap.Field{
		zap.Int64("actor_id", actorID),
		zap.String("nconst", nconst),
	}
}

// Run creates fields identifying one recalculation run.
func (LoggerFields) Run(runID string, versionID int64) []zap.Field {
	return []zap.Field{
		zap.String("run_id", runID),
		zap.Int64("version_id", versionID),
	}
}
