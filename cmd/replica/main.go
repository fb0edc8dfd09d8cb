package main

import "os"

import "github.com/tcondon31/3700kvstore/pkg/election"
import "github.com/tcondon31/3700kvstore/pkg/engine"
import clog "github.com/tcondon31/3700kvstore/pkg/logger"
import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/transport"


const NAME = "Main"

var Log = clog.NewCustomLog(NAME)

const connPoolMaxConn = 10

/*
	usage: replica <my_id> <peer_id>...

	no flags, no environment variables, no persisted state. at least two
	peers must be given (cluster_size >= 3)
*/

func main() {
	if len(os.Args) < 4 {
		Log.Fatal("usage: replica <my_id> <peer_id>...  (at least two peers required)")
	}

	myID := os.Args[1]
	peerIDs := os.Args[2:]

	r := replica.NewReplica(myID, peerIDs, election.NewElectionTimeout())

	t, transportErr := transport.NewTransport(myID, transport.PoolOpts{MaxConn: connPoolMaxConn})
	if transportErr != nil {
		Log.Fatal("unable to start transport for", myID, ":", transportErr)
	}
	defer t.Close()

	Log.Info(myID, "started with peers", peerIDs, "election timeout", r.ElectionTimeout)

	engine.Run(r, t)
}
