// Package logging provides structured logging for townreport.
//
// This package wraps Go's log/slog to write JSON-formatted logs. A terminal
// UI owns stdout, so logs go to a file under the state directory by default.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/state", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("view activated", "view", "camera")
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	viewLogger := logger.WithView("map")
//	viewLogger.Info("pin placed", "lat", 35.6, "lng", 139.7)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"pin placed","view":"map","lat":35.6,"lng":139.7}
//
// # Log Rotation
//
//	logger, err := logging.NewLoggerWithRotation(dir, "INFO", logging.RotationConfig{
//	    MaxSizeMB:  10,
//	    MaxBackups: 3,
//	    Compress:   true,
//	})
//
// Rotated files are named townreport.log.1, townreport.log.2, ... with .1 the
// most recent backup (townreport.log.1.gz when compressed).
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] to capture it.
package logging
