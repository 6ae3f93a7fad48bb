// Package logging provides structured logging for Keyword Master.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used throughout the application: generation attempts
// against the model provider, HTTP requests served by the web UI, and
// general informational and error messages.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (prompts, raw reply sizes)
//   - Info: Normal operations (generation completed, server started)
//   - Warn: Recoverable failures (generation failed, clipboard unavailable)
//   - Error: Failures that stop a command (server failed to start)
//
// # Silent by Default
//
// Logging is disabled unless a level is requested, either with the
// --log-level flag or the KEYWORDMASTER_LOG_LEVEL environment variable.
// This keeps the terminal UI free of log noise:
//
//	if err := logging.Initialize(logLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("Tags generated",
//	    zap.String("provider", "gemini"),
//	    zap.Int("count", 100),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
