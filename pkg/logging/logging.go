// Package logging provides the shared application and audit loggers.
//
// App is a leveled key=value logger for diagnostics; Audit is an
// append-only record of permission decisions. Both default to discarding
// output until Initialize is called, so library packages can log
// unconditionally.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents the severity of an application log message.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Config holds logging configuration.
type Config struct {
	// AppLogPath is the application log destination; empty logs to stderr.
	AppLogPath string
	// AuditLogPath is the decision log destination; empty discards.
	AuditLogPath string
	// Level is the minimum application log level; empty means info.
	Level Level
}

var (
	// App is the global application logger.
	App *AppLogger
	// Audit is the global permission-decision logger.
	Audit *AuditLogger
)

func init() {
	App = &AppLogger{level: LevelInfo, logger: log.New(io.Discard, "", 0)}
	Audit = &AuditLogger{logger: log.New(io.Discard, "", 0)}
}

// Initialize sets up the global loggers from config.
func Initialize(cfg *Config) error {
	level := cfg.Level
	if level == "" {
		level = LevelInfo
	}
	if _, ok := levelRank[level]; !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	appWriter := io.Writer(os.Stderr)
	if cfg.AppLogPath != "" {
		f, err := openLogFile(cfg.AppLogPath)
		if err != nil {
			return fmt.Errorf("opening app log: %w", err)
		}
		appWriter = f
	}

	auditWriter := io.Writer(io.Discard)
	if cfg.AuditLogPath != "" {
		f, err := openLogFile(cfg.AuditLogPath)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		auditWriter = f
	}

	App = &AppLogger{level: level, logger: log.New(appWriter, "", 0)}
	Audit = &AuditLogger{logger: log.New(auditWriter, "", 0)}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// AppLogger writes leveled key=value application logs.
type AppLogger struct {
	level  Level
	logger *log.Logger
}

func (l *AppLogger) Debug(message string, keyvals ...interface{}) {
	l.log(LevelDebug, message, keyvals...)
}

func (l *AppLogger) Info(message string, keyvals ...interface{}) {
	l.log(LevelInfo, message, keyvals...)
}

func (l *AppLogger) Warn(message string, keyvals ...interface{}) {
	l.log(LevelWarn, message, keyvals...)
}

func (l *AppLogger) Error(message string, keyvals ...interface{}) {
	l.log(LevelError, message, keyvals...)
}

func (l *AppLogger) log(level Level, message string, keyvals ...interface{}) {
	if levelRank[level] < levelRank[l.level] {
		return
	}
	parts := []string{
		time.Now().UTC().Format(time.RFC3339),
		strings.ToUpper(string(level)),
		message,
	}
	for i := 0; i+1 < len(keyvals); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%s", keyvals[i], formatValue(keyvals[i+1])))
	}
	l.logger.Print(strings.Join(parts, " "))
}

// AuditLogger records permission decisions in a consistent logfmt line.
type AuditLogger struct {
	logger *log.Logger
}

// Decision logs the outcome of a permission check.
func (l *AuditLogger) Decision(user, path, kind string, granted bool, details ...interface{}) {
	status := "denied"
	if granted {
		status = "granted"
	}
	parts := []string{
		fmt.Sprintf("op=CHECK user=%s path=%s kind=%s status=%s",
			formatValue(user), formatValue(path), kind, status),
	}
	for i := 0; i+1 < len(details); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%s", details[i], formatValue(details[i+1])))
	}
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}

// formatValue formats a value for logfmt, quoting if necessary.
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
