package utils

import (
	"time"

	"github.com/briandowns/spinner"
)

var sp *spinner.Spinner

func StartSpinner() {
	sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " Consulting GCP..."
	sp.Start()
}

func StopSpinner() {
	if sp != nil {
		sp.Stop()
		sp = nil
	}
}
