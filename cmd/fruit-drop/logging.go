package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "fruit-drop.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the standard logger to a rotated file when debug is set
// Otherwise output is discarded so nothing reaches the terminal
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		_ = os.Rename(logPath, filepath.Join(logDir, rotatedLogName(time.Now())))
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return f
}

// rotatedLogName is the archive name for a log rotated at t
func rotatedLogName(t time.Time) string {
	return "fruit-drop-" + t.Format("20060102-150405") + ".log"
}
