package executor

// Result is the outcome of one supervised execution. It is complete by
// the time Execute returns it; the caller owns it from then on.
type Result struct {
	Success            bool   // success marker seen, or clean exit with no verdict
	ExitCode           int    // -1 until the child has been observed to exit
	Output             string // full transcript, newline-delimited, arrival order
	ErrorLine          string // last line matched by the error heuristic
	OverwritePrompted  bool   // an overwrite prompt was detected
	OverwriteConfirmed bool   // a confirmation was sent in response
}
