// Package logging provides a minimal logging interface and adapters for Paibot.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the bot core and the stores use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.New(func(c *logging.Config) { c.Level = logging.LevelDebug })
//	b, err := bot.New(func(o *bot.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
