package condition

import (
	"log"
	"os"
)

// abortProcess is the default termination behind AbortFunc: log and exit
// non-zero, so a caller can tell "unhandled condition" apart from other
// failure modes.
func abortProcess() {
	log.SetFlags(0)
	log.Print("condition: unhandled error() reached no handler; aborting")
	os.Exit(1)
}
