// Package logging provides subsystem-tagged structured logging for loopauth,
// built on the standard slog package.
//
// Every record carries a "subsystem" attribute (CallbackListener, Flow,
// Surface, Config, ...) so the sign-in flow can be followed in a single log.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Flow", "Sign-in flow started on port %d", port)
//	logging.Error("Surface", err, "Failed to close sign-in window")
//
// Desktop builds have no terminal attached, so a rotating log file can be
// used instead:
//
//	logging.InitForFile(logging.LevelDebug, "/path/to/loopauth.log", logging.FileOptions{})
//	defer logging.Close()
//
// Before initialization only warnings and errors are written, to stderr.
//
// Identity tokens are never logged; only their length is.
package logging
