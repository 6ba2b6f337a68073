package docker

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerInterval is the frame delay of the pull progress indicator.
const spinnerInterval = 100 * time.Millisecond

// newPullSpinner returns a stopped spinner that draws message on w.
// Stop erases the line and returns only after the drawing goroutine has
// stopped writing, so the run step starts on a clean line.
func newPullSpinner(w io.Writer, message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], spinnerInterval, spinner.WithWriter(w))
	s.Suffix = " " + message
	return s
}
