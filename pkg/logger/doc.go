// Package logger provides a thin factory around Go's slog package, exposing
// a single constructor – New – configured through functional options.
//
// The app shell owns the logger; library packages return errors instead of
// logging. Options select the output format (text for development, JSON for
// aggregation), the minimum level, the destination writer, and static
// attributes attached to every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("rt07"),
//	)
//	logger.SetAsDefault(log)
package logger
