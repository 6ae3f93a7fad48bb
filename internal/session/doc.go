// Package session owns the state of one tag generation session.
//
// A Controller holds the topic, the generated tags, the in-flight flag, the
// last error and the clipboard status. Front ends never mutate that state
// directly; they call the action methods (Generate, RemoveTag, CopyAll,
// Export) and read it back through Snapshot.
//
// # States
//
//	Idle --Begin--> Generating --Finish(ok)--> Success
//	                           --Finish(err)-> Failed
//	Success --RemoveTag--> Success
//	any (not Generating) --Begin--> Generating
//
// Begin clears the previous tags and error. A topic that is empty after
// trimming never reaches the generator. While a generation is in flight a new
// Begin is rejected with ErrInFlight, and a Finish for a request id that is no
// longer current is discarded. After Close, Begin returns ErrClosed.
//
// The copy status is independent of the states above: CopyAll sets it to
// CopyCopied and it reverts to CopyIdle after CopyResetDelay. A newer copy
// cancels the pending revert.
//
// # Concurrency
//
// All methods are safe for concurrent use. The controller lock is never held
// while the generator or the clipboard runs. Subscribe delivers a signal after
// every state change so live views can re-render.
package session
