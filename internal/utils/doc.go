// Package utils exposes reusable helpers consumed by the CLI entry point.
//
// It houses ConfigurationLoader (Viper with embedded defaults, configuration
// files and RAWDROP_* environment overrides), LoggerFactory (zap diagnostics on
// standard error), CommandContextAccessor, and FlushingWriter for console output
// that must appear before the next prompt blocks on input.
package utils
