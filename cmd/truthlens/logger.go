// cmd/truthlens/logger.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarning
	LogError
)

var logLevelStrings = map[LogLevel]string{
	LogDebug:   "DEBUG",
	LogInfo:    "INFO",
	LogWarning: "WARN",
	LogError:   "ERROR",
}

// ParseLogLevel maps a config string to a LogLevel, defaulting to info
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogDebug
	case "warn", "warning":
		return LogWarning
	case "error":
		return LogError
	default:
		return LogInfo
	}
}

// AppLogger handles application logging
type AppLogger struct {
	logger    *log.Logger
	file      *os.File
	level     LogLevel
	filename  string
	maxSize   int64
	retention time.Duration
	mutex     sync.Mutex
	startTime time.Time
}

var (
	instance     *AppLogger
	instanceMu   sync.RWMutex
	fallbackOnce sync.Once
	fallback     *AppLogger
)

// InitLogger initializes the global logger instance
func InitLogger(logPath string, level LogLevel) error {
	l, err := newLogger(logPath, level)
	if err != nil {
		return err
	}

	instanceMu.Lock()
	old := instance
	instance = l
	instanceMu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Logger returns the global logger instance. Before InitLogger runs it
// returns a stdout-only logger.
func Logger() *AppLogger {
	instanceMu.RLock()
	l := instance
	instanceMu.RUnlock()
	if l != nil {
		return l
	}

	fallbackOnce.Do(func() {
		fallback = &AppLogger{
			logger:    log.New(os.Stdout, "", log.LstdFlags),
			level:     LogInfo,
			startTime: time.Now(),
		}
	})
	return fallback
}

// newLogger creates a new logger instance
func newLogger(logPath string, level LogLevel) (*AppLogger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	multiWriter := io.MultiWriter(file, os.Stdout)

	l := &AppLogger{
		logger:    log.New(multiWriter, "", log.LstdFlags),
		file:      file,
		level:     level,
		filename:  logPath,
		maxSize:   50 * 1024 * 1024, // 50MB
		retention: 7 * 24 * time.Hour,
		startTime: time.Now(),
	}

	l.Info("Logger initialized")
	return l, nil
}

// log formats and writes a log message
func (l *AppLogger) log(level LogLevel, format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level < l.level {
		return
	}

	if err := l.rotateIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
	}

	msg := fmt.Sprintf("[%s] %s", logLevelStrings[level], fmt.Sprintf(format, args...))
	l.logger.Print(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.log(LogDebug, format, args...)
}

// Info logs an info message
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.log(LogInfo, format, args...)
}

// Warning logs a warning message
func (l *AppLogger) Warning(format string, args ...interface{}) {
	l.log(LogWarning, format, args...)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.log(LogError, format, args...)
}

// rotateIfNeeded checks if log rotation is needed and performs it.
// Callers hold l.mutex.
func (l *AppLogger) rotateIfNeeded() error {
	if l.file == nil {
		return nil
	}

	info, err := l.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	if info.Size() < l.maxSize {
		return nil
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	rotatedPath := fmt.Sprintf("%s.%s", l.filename, timestamp)

	if err := os.Rename(l.filename, rotatedPath); err != nil {
		return fmt.Errorf("failed to rename log file: %w", err)
	}

	file, err := os.OpenFile(l.filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.logger.SetOutput(io.MultiWriter(file, os.Stdout))
	l.file = file

	l.logger.Printf("[%s] Log file rotated to %s", logLevelStrings[LogInfo], rotatedPath)
	return nil
}

// CleanOldLogs removes rotated log files older than the retention period
// and returns how many were removed.
func (l *AppLogger) CleanOldLogs() (int, error) {
	if l.filename == "" {
		return 0, nil
	}

	dir := filepath.Dir(l.filename)
	pattern := filepath.Base(l.filename) + ".*"

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0, fmt.Errorf("failed to list log files: %w", err)
	}

	now := time.Now()
	removed := 0
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			l.Warning("Failed to stat log file %s: %v", file, err)
			continue
		}

		if now.Sub(info.ModTime()) > l.retention {
			if err := os.Remove(file); err != nil {
				l.Warning("Failed to remove old log file %s: %v", file, err)
				continue
			}
			removed++
			l.Info("Removed old log file: %s", file)
		}
	}

	return removed, nil
}

// Close closes the logger and underlying file
func (l *AppLogger) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	l.file = nil
	return nil
}

// GetStats returns logging statistics
func (l *AppLogger) GetStats() map[string]interface{} {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	size := int64(0)
	if l.file != nil {
		if info, err := l.file.Stat(); err == nil {
			size = info.Size()
		}
	}

	return map[string]interface{}{
		"uptime":      time.Since(l.startTime).String(),
		"level":       logLevelStrings[l.level],
		"currentSize": size,
		"maxSize":     l.maxSize,
	}
}
