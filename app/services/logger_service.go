package services

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// LoggerService wires the global zerolog logger to the console and a log
// file under the data directory. Console output is human readable, the file
// keeps structured JSON lines.
type LoggerService struct {
	logDir  string
	logFile *os.File
}

// NewLoggerService creates a new logger service writing under dataDir
func NewLoggerService(dataDir string) *LoggerService {
	service := &LoggerService{}
	service.initialize(dataDir)
	return service
}

func (s *LoggerService) initialize(dataDir string) {
	zerolog.TimeFieldFormat = time.RFC3339

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}

	s.logDir = filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(s.logDir, 0755); err != nil {
		zlog.Logger = zlog.Output(console)
		zlog.Warn().Err(err).Msg("could not create log directory, logging to console only")
		return
	}

	logPath := filepath.Join(s.logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		zlog.Logger = zlog.Output(console)
		zlog.Warn().Err(err).Msg("could not open log file, logging to console only")
		return
	}

	s.logFile = file
	zlog.Logger = zlog.Output(zerolog.MultiLevelWriter(console, file))
	zlog.Info().Str("dir", s.logDir).Msg("logger initialized")
}

// RecoverPanic logs and swallows a panic in a background goroutine. Use with
// defer at the top of every goroutine the process must survive.
func (s *LoggerService) RecoverPanic(component string) {
	if r := recover(); r != nil {
		zlog.Error().
			Str("component", component).
			Interface("panic", r).
			Str("stack", string(debug.Stack())).
			Msg("recovered from panic")
	}
}

// Close flushes and closes the log file
func (s *LoggerService) Close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}
