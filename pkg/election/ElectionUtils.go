package election

import "math/rand"
import "time"


//=========================================== Election Utils


/*
	NewElectionTimeout:
		one random duration per process in [0.5s, 3.0s], chosen once at startup
		chosen once at process startup, not reselected after each election
*/

func NewElectionTimeout() time.Duration {
	spreadMs := maxElectionTimeoutMs - minElectionTimeoutMs
	timeoutMs := rand.Intn(spreadMs+1) + minElectionTimeoutMs

	return time.Duration(timeoutMs) * time.Millisecond
}

/*
	HasQuorum:
		cluster_size = peers + 1. a strict majority resolves the
		off-by-one open question: a count is a quorum once it exceeds
		cluster_size/2 (integer division) -- for cluster_size=5 that's >2, i.e. 3
		including the candidate/leader itself
*/

func HasQuorum(count int, clusterSize int) bool {
	return count > clusterSize/2
}
