package engine

import "time"

import clog "github.com/tcondon31/3700kvstore/pkg/logger"

import "github.com/tcondon31/3700kvstore/pkg/clientapi"
import "github.com/tcondon31/3700kvstore/pkg/election"
import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/replication"
import "github.com/tcondon31/3700kvstore/pkg/transport"
import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Event Loop


const NAME = "Engine"

var Log = clog.NewCustomLog(NAME)

const queueDrainIdle = 2 * time.Second

/*
	resetsEventTimer:
		appendEntry, requestVote, and vote are the only kinds that count as
		liveness from the rest of the cluster; get/put/confirmation never
		reset the election clock on their own
*/

func resetsEventTimer(kind wire.MessageType) bool {
	return kind == wire.AppendEntry || kind == wire.RequestVote || kind == wire.Vote
}

/*
	Run:
		the single-threaded, cooperatively scheduled loop. transport goroutines
		only ever decode bytes and push onto t.Inbox; every read of and write to
		Replica state happens on this one goroutine, so nothing here needs a lock
*/

func Run(r *replica.Replica, t *transport.Transport) {
	for {
		if r.Role == replica.Candidate && election.HasQuorum(len(r.Supporters), r.ClusterSize()) {
			winHeartbeat := replication.Heartbeat(r)
			r.TransitionToLeader()
			t.Dispatch(winHeartbeat, r.PeerIDs)
		}

		select {
		case msg := <-t.Inbox:
			if resetsEventTimer(msg.Type) {
				r.LastEvent = time.Now()
			}

			if time.Since(r.LastEvent) > r.ElectionTimeout && r.Role != replica.Leader {
				startElection(r, t)
				r.LastEvent = time.Now()
			}

			dispatch(r, t, msg)

			if resetsEventTimer(msg.Type) {
				r.LastEvent = time.Now()
			}

		case <-time.After(r.ElectionTimeout):
			if r.Role == replica.Leader {
				t.Dispatch(replication.Heartbeat(r), r.PeerIDs)
			} else {
				startElection(r, t)
				r.LastEvent = time.Now()
			}
		}

		if r.Role == replica.Leader && time.Since(r.LastEvent) > queueDrainIdle {
			for _, reply := range clientapi.DrainQueue(r) {
				t.Dispatch(reply, r.PeerIDs)
			}
		}
	}
}

func startElection(r *replica.Replica, t *transport.Transport) {
	vote := election.StartElection(r)
	t.Dispatch(vote, r.PeerIDs)
}

/*
	dispatch:
		routes one decoded envelope to its handler and sends whatever outbound
		envelopes the handler produces. redirect and ok are client-bound kinds
		that pass the codec but match no case here, so they are ignored; any
		other unknown Type was already rejected by the codec as BadMessage
		before it was ever placed on the inbox
*/

func dispatch(r *replica.Replica, t *transport.Transport, msg *wire.Envelope) {
	switch msg.Type {
	case wire.Get:
		for _, reply := range clientapi.HandleGet(r, msg) {
			t.Dispatch(reply, r.PeerIDs)
		}

	case wire.Put:
		if reply := clientapi.HandlePut(r, msg); reply != nil {
			t.Dispatch(reply, r.PeerIDs)
		} else if r.IsLeader() {
			for _, entry := range replication.DispatchAppendEntries(r) {
				t.Dispatch(entry, r.PeerIDs)
			}
		}

	case wire.RequestVote:
		reply := election.HandleRequestVote(r, msg)
		t.Dispatch(reply, r.PeerIDs)

	case wire.Vote:
		election.HandleVote(r, msg)

	case wire.AppendEntry:
		reply := replication.HandleAppendEntry(r, msg)
		if reply != nil {
			t.Dispatch(reply, r.PeerIDs)
		}

	case wire.Confirmation:
		applied, stepDown := replication.HandleConfirmation(r, msg)
		if stepDown {
			return
		}

		for _, entry := range applied {
			t.Dispatch(entry.Reply, r.PeerIDs)
		}

		if msg.Success && r.IsLeader() {
			for _, entry := range replication.DispatchAppendEntries(r) {
				t.Dispatch(entry, r.PeerIDs)
			}
		}
	}
}
