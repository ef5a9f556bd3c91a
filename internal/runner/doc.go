// Package runner launches an external program and streams its standard
// output and standard error, line by line, to a Sink while it runs.
//
// Both pipes are drained concurrently so that a child writing heavily to
// one stream can never block on the other. Cancelling the context sends the
// child an interrupt; if it has not exited after the grace period it is
// killed.
package runner
