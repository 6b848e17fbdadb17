// Package logging builds the slog loggers used across retune, with a
// console pretty handler for interactive use and a JSON handler for
// machine consumption.
package logging
