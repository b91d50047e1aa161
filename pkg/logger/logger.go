package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps the shared logrus instance.
type Logger struct {
	*logrus.Logger
	mu sync.RWMutex
}

// LogLevel represents log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// LogFormat represents log output formats
type LogFormat string

const (
	JSONFormat LogFormat = "json"
	TextFormat LogFormat = "text"
)

// Config represents logger configuration
type Config struct {
	Level  LogLevel
	Format LogFormat
	Output string // file path or "stdout"
}

var (
	instance *Logger
	once     sync.Once
)

// Init initializes the global logger
func Init() {
	once.Do(func() {
		instance = NewLogger(loadConfig())
	})
}

// NewLogger creates a new logger instance
func NewLogger(config Config) *Logger {
	logger := &Logger{
		Logger: logrus.New(),
	}

	logger.SetLevel(toLogrusLevel(config.Level))

	if config.Format == TextFormat {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	if config.Output == "stdout" || config.Output == "" {
		logger.SetOutput(os.Stdout)
	} else {
		writer, err := openLogFile(config.Output)
		if err != nil {
			log.Printf("Failed to open log file, falling back to stdout: %v", err)
			logger.SetOutput(os.Stdout)
		} else {
			logger.SetOutput(writer)
		}
	}

	return logger
}

func openLogFile(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	// Mirror to stdout during development
	if os.Getenv("APP_ENV") == "development" {
		return io.MultiWriter(file, os.Stdout), nil
	}

	return file, nil
}

// loadConfig returns logger configuration from environment
func loadConfig() Config {
	config := Config{
		Level:  InfoLevel,
		Format: JSONFormat,
		Output: "stdout",
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = LogLevel(strings.ToLower(level))
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = LogFormat(strings.ToLower(format))
	}

	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		config.Output = output
	}

	return config
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Global logger functions

// Debug logs a debug message
func Debug(args ...interface{}) {
	Init()
	instance.Debug(args...)
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	Init()
	instance.Debugf(format, args...)
}

// Info logs an info message
func Info(args ...interface{}) {
	Init()
	instance.Info(args...)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	Init()
	instance.Infof(format, args...)
}

// Warn logs a warning message
func Warn(args ...interface{}) {
	Init()
	instance.Warn(args...)
}

// Error logs an error message
func Error(args ...interface{}) {
	Init()
	instance.Error(args...)
}

// Fatal logs a fatal message and exits
func Fatal(args ...interface{}) {
	Init()
	instance.Fatal(args...)
}

// WithField creates a logger entry with a field
func WithField(key string, value interface{}) *logrus.Entry {
	Init()
	return instance.WithField(key, value)
}

// WithFields creates a logger entry with multiple fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	Init()
	return instance.WithFields(fields)
}

// WithError creates a logger entry with an error field
func WithError(err error) *logrus.Entry {
	Init()
	return instance.WithError(err)
}

// LogError logs detailed error information
func LogError(err error, context string, metadata map[string]interface{}) {
	fields := logrus.Fields{
		"error":   err.Error(),
		"context": context,
		"type":    "error_detail",
	}

	for k, v := range metadata {
		fields[k] = v
	}

	WithFields(fields).Error("Application Error")
}

// LogMemberAction logs member-initiated actions
func LogMemberAction(memberID, action string, metadata map[string]interface{}) {
	fields := logrus.Fields{
		"member_id": memberID,
		"action":    action,
		"type":      "member_action",
	}

	for k, v := range metadata {
		fields[k] = v
	}

	WithFields(fields).Info("Member Action")
}

// LogConversationEvent logs chat-related events
func LogConversationEvent(event, memberID, peerID string, metadata map[string]interface{}) {
	fields := logrus.Fields{
		"event":     event,
		"member_id": memberID,
		"peer_id":   peerID,
		"type":      "conversation_event",
	}

	for k, v := range metadata {
		fields[k] = v
	}

	WithFields(fields).Info("Conversation Event")
}

// LogSwapEvent logs swap-request lifecycle events
func LogSwapEvent(event, requestID, memberID string, metadata map[string]interface{}) {
	fields := logrus.Fields{
		"event":      event,
		"request_id": requestID,
		"member_id":  memberID,
		"type":       "swap_event",
	}

	for k, v := range metadata {
		fields[k] = v
	}

	WithFields(fields).Info("Swap Event")
}

// LogSessionEvent logs session lifecycle events
func LogSessionEvent(event, sessionID, memberID string, metadata map[string]interface{}) {
	fields := logrus.Fields{
		"event":      event,
		"session_id": sessionID,
		"member_id":  memberID,
		"type":       "session_event",
	}

	for k, v := range metadata {
		fields[k] = v
	}

	WithFields(fields).Info("Session Event")
}

// SetLevel changes the logger level at runtime
func SetLevel(level LogLevel) {
	Init()
	instance.mu.Lock()
	defer instance.mu.Unlock()
	instance.SetLevel(toLogrusLevel(level))
}
