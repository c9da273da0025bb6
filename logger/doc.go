// Package logger builds the zerolog loggers used across relay
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// environment-driven setup for processes that load client definitions
// from files.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
