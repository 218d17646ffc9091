// Package logging provides structured logging utilities for tempmon components.
//
// # Overview
//
// This package wraps the standard library slog package with tempmon defaults
// so that the acquisition core, the operator console and the status server
// all emit the same record shape. It supports environment-based log level
// configuration, module/version context injection, and automatic source
// location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-cycle diagnostics (empty reads, render timings) with source location
//   - INFO: lifecycle transitions and every acquired sample (default)
//   - WARN/WARNING: render failures and transient read problems worth attention
//   - ERROR: session aborts and failed commands
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("tempmon", "v1.0.0")
//	    slog.Info("sample acquired", "elapsed", 3, "value", "23.5")
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("tempmon", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no
// explicit level is passed:
//
//	LOG_LEVEL=debug tempmon record --output run.csv
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "sample acquired",
//	    "module": "tempmon",
//	    "version": "v1.0.0",
//	    "elapsed": 3,
//	    "value": "23.5"
//	}
package logging
