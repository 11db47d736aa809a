package indexer

import (
	"errors"
	"fmt"
	"time"
)

// ErrPartialFailure is returned by Report.Err when at least one height failed.
var ErrPartialFailure = errors.New("sweep finished with failed heights")

// Stage names the step at which a height failed.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageNormalize Stage = "normalize"
	StageWrite     Stage = "write"
)

// Failure describes one height that did not commit. TxHash is set when a single transaction caused it.
type Failure struct {
	Height uint64
	TxHash string
	Stage  Stage
	Err    error
}

func (f Failure) Error() string {
	if f.TxHash != "" {
		return fmt.Sprintf("height %d tx %s: %s: %v", f.Height, f.TxHash, f.Stage, f.Err)
	}
	return fmt.Sprintf("height %d: %s: %v", f.Height, f.Stage, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of a finished sweep. Committed + Failed always equals Attempted.
type Report struct {
	Attempted uint64
	Committed uint64
	Failed    uint64
	Rows      uint64
	Elapsed   time.Duration
	// Failures is ordered by height.
	Failures []Failure
}

// Err returns ErrPartialFailure when any height failed.
func (r Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d heights", ErrPartialFailure, r.Failed, r.Attempted)
}
