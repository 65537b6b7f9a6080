// Package logging constructs the application's slog loggers: a console
// handler that promotes the component attribute to a line prefix, and a JSON
// handler for machine consumption. Codec packages receive a *slog.Logger and
// never construct their own.
package logging
