package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(&lazyFile{path: filepath.Join("logs", "catalogxl.log")}, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// lazyFile opens its log file on the first write, so runs that log nothing
// leave nothing on disk
type lazyFile struct {
	path string
	once sync.Once
	w    io.Writer
}

func (l *lazyFile) Write(p []byte) (int, error) {
	l.once.Do(func() {
		l.w = openLogOutput(l.path)
	})
	return l.w.Write(p)
}

// openLogOutput returns the log file at path, or stderr when it cannot be created
func openLogOutput(path string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return os.Stderr
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return os.Stderr
	}
	return logFile
}

// SetOutput redirects the logger, used by tests to keep logs out of the tree
func SetOutput(w io.Writer) {
	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
