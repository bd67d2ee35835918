// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// merges the optional config file with CLI flags into the application's
// internal configuration.
package cli
