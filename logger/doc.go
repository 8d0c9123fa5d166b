// Package logger provides structured logging for httpkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers. The httpop dispatcher logs its per-request
// diagnostic lines through a component logger obtained from here.
//
// # Usage
//
//	logger.Init(logger.Config{Level: "debug", Format: "console"})
//	log := logger.WithComponent("httpop")
//	log.Debug("[1] GET http://example.org/data")
package logger
