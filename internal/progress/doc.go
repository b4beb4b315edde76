// Package progress renders generation progress to the terminal.
//
// Real progress is reported while the change context is assembled; once
// the request is in flight to the model there is nothing left to measure,
// so an Animator advances the bar cosmetically toward a ceiling with
// decaying increments until the response arrives.
package progress
