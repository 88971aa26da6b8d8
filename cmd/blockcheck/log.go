// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/panda-suite/bcash/blockrelay"
)

// logWriter implements an io.Writer that outputs to standard error and,
// when a rotator is configured, the rotated log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	// backendLog is the logging backend used to create all subsystem
	// loggers.  The backend must not be used before the log rotator has
	// been initialized when file logging is requested, or data races and
	// lost messages occur.
	backendLog = slog.NewBackend(logWriter{})

	// logRotator is one of the logging outputs.  It is nil unless file
	// logging was requested and should only be used through logWriter.
	logRotator *rotator.Rotator

	log      = backendLog.Logger("BCHK")
	relayLog = backendLog.Logger("RELY")
)

func init() {
	blockrelay.UseLogger(relayLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]slog.Logger{
	"BCHK": log,
	"RELY": relayLog,
}

// initLogRotator initializes the logging rotator to write logs to logFile and
// creates the parent directory when needed.  It must be called before the
// package-global log rotator variable is used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	logRotator = r
	return nil
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}

// setLogLevels sets the log level for all subsystem loggers to the provided
// level.
func setLogLevels(logLevel string) {
	level, _ := slog.LevelFromString(logLevel)
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
