// Package config loads process configuration from environment variables.
//
// It wraps github.com/joho/godotenv, which fills the environment from .env
// files, and github.com/caarlos0/env/v11, which parses the environment into
// tagged structs. Every package of the portal exposes its own Config struct;
// cmd/portal loads each of them through Load.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once and cached by type. Tests that change
// the environment call ResetCache before loading again.
//
// Errors:
//
//   - ErrParsingConfig: a value is malformed or a required variable is unset.
//   - ErrInvalidConfigType: the target type is not a struct.
//   - ErrNilPointer: a nil pointer was passed.
//   - ErrLoadingEnvFile: an explicit .env path could not be read.
package config
