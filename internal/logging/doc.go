// Package logging provides opt-in file-based logging with rotation for coretools.
// When the --debug flag is set, JSON logs are written to ~/.coretools/logs/<tool>.log
// for troubleshooting SDK probing and native module loading.
//
// By default (without --debug), log records are discarded so that the
// human-readable diagnostics on stderr remain the only side channel.
package logging
