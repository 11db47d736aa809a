package indexer

import "time"

const (
	defaultFetchWidth       = 60
	defaultProgressInterval = 10 * time.Second

	maxLoggedFailures = 20

	mirrorFlushSize        = 5000
	mirrorFlushInterval    = 5 * time.Second
	mirrorFlushesPerSecond = 2

	outcomeCommitted = "committed"
)
