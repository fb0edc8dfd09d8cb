package replication

import clog "github.com/tcondon31/3700kvstore/pkg/logger"


const NAME = "Replication"

var Log = clog.NewCustomLog(NAME)

/*
	batchSize / batchThreshold:
		leader append dispatch: once a peer is more than batchThreshold
		entries behind, cap what is sent in one appendEntry to batchSize so a
		single dispatch doesn't balloon to the whole backlog
*/

const (
	batchThreshold = 100
	batchSize      = 50
)
