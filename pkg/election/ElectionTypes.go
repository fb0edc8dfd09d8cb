package election

import clog "github.com/tcondon31/3700kvstore/pkg/logger"


const NAME = "Election"

var Log = clog.NewCustomLog(NAME)

const (
	minElectionTimeoutMs = 500
	maxElectionTimeoutMs = 3000

	// withdrawing a candidacy after a rejected vote extends the timeout by
	// this much, staggering the retry against the peer that rejected it
	withdrawExtensionMs = 2000
)
