package replica

import "time"

import "github.com/tcondon31/3700kvstore/pkg/kvstore"
import "github.com/tcondon31/3700kvstore/pkg/raftlog"


//=========================================== Replica Types


type Role string

const (
	Follower  Role = "follower"
	Candidate Role = "candidate"
	Leader    Role = "leader"
)

/*
	Unknown:
		the sentinel peer id meaning "leader currently unknown". identical to
		wire.Broadcast on the wire, kept as its own name here since the two
		meanings (destination vs. unknown leader) are conceptually distinct even
		though they share a bit pattern
*/

const Unknown = "FFFF"

/*
	GetQueueEntry:
		a deferred linearizable read, tagged with the log index observed at
		intake. queued whenever the leader's commit index trails its log, so a
		read-after-write can't observe an uncommitted value
*/

type GetQueueEntry struct {
	Src           string
	MID           string
	Key           string
	IndexReceived int64
}

/*
	Replica:
		all in-memory state for one cluster member. monomorphic rather than
		generic: the state machine is always a string/string key-value store, so
		there is no type parameter to thread through
*/

type Replica struct {
	MyID    string
	PeerIDs []string

	CurrentTerm   int64
	VotedForTerm  int64
	CurrentLeader string
	Role          Role
	Supporters    map[string]bool

	Log          *raftlog.Log
	StateMachine *kvstore.StateMachine

	CommitIndex int64
	LastApplied int64

	// leader-only, nil while not Leader
	NextIndex  map[string]int64
	MatchIndex map[string]int64

	GetQueue []GetQueueEntry

	ElectionTimeout time.Duration
	LastEvent       time.Time
}

func NewReplica(myID string, peerIDs []string, electionTimeout time.Duration) *Replica {
	return &Replica{
		MyID:            myID,
		PeerIDs:         append([]string{}, peerIDs...),
		CurrentTerm:     0,
		VotedForTerm:    0,
		CurrentLeader:   Unknown,
		Role:            Follower,
		Supporters:      make(map[string]bool),
		Log:             raftlog.NewLog(),
		StateMachine:    kvstore.NewStateMachine(),
		CommitIndex:     0,
		LastApplied:     0,
		ElectionTimeout: electionTimeout,
		LastEvent:       time.Now(),
	}
}

/*
	ClusterSize:
		peers plus self
*/

func (r *Replica) ClusterSize() int {
	return len(r.PeerIDs) + 1
}

/*
	IsLeader:
		convenience predicate used by the client pipeline and the event loop
*/

func (r *Replica) IsLeader() bool {
	return r.Role == Leader
}
