// Package logging provides structured logging for roadmctl on top of
// log/slog.
//
// Output format, level and destination come from the logging section
// of the configuration; every record carries the service name and
// version as default attributes. Loggers are safe for concurrent use.
package logging
