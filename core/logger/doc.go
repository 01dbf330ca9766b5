// Package logger builds slog loggers and provides attribute helpers shared by
// the router, the navigation controller, the session store and the HTTP client.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("spakit"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("view mounted",
//		logger.Component("navigation"),
//		logger.Path("/"),
//		logger.View("home"),
//	)
//
// # Environment Configurations
//
//	logger.New(logger.WithDevelopment("spakit")) // text, debug, stderr
//	logger.New(logger.WithProduction("spakit"))  // json, info, stderr
//
// # Nil Safety
//
// Helpers that receive optional values (errors, IDs) return an empty slog.Attr
// for zero input; slog drops empty attributes, so call sites need no guards:
//
//	log.Warn("dispatch failed", logger.Error(err))
//
// # Discarding
//
// Components default to Discard() so that nothing is written unless the
// caller passes a logger explicitly.
package logger
