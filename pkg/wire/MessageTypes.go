package wire

import "github.com/tcondon31/3700kvstore/pkg/raftlog"


//=========================================== Message Types


/*
	Broadcast:
		the sentinel destination/leader address. on the wire this is the literal
		string "FFFF" per the protocol; as a leader value it additionally means
		"leader currently unknown"
*/

const Broadcast = "FFFF"

type MessageType string

const (
	Get          MessageType = "get"
	Put          MessageType = "put"
	Redirect     MessageType = "redirect"
	Ok           MessageType = "ok"
	RequestVote  MessageType = "requestVote"
	Vote         MessageType = "vote"
	AppendEntry  MessageType = "appendEntry"
	Confirmation MessageType = "confirmation"
)

/*
	Envelope:
		every message on the wire shares this shape. every kind-specific field is
		optional on the envelope and only populated for the kinds that use it --
		one flat struct rather than a tagged union, since the wire format is JSON
		and there is no generated oneof to reach for
*/

type Envelope struct {
	Src    string      `json:"src"`
	Dst    string      `json:"dst"`
	Leader string      `json:"leader"`
	Type   MessageType `json:"type"`

	// client get/put/redirect/ok
	MID   string `json:"MID,omitempty"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`

	// requestVote / vote
	Term         int64  `json:"term,omitempty"`
	CandidateID  string `json:"candidateID,omitempty"`
	LastLogIndex int64  `json:"lastLogIndex,omitempty"`
	LastLogTerm  int64  `json:"lastLogTerm,omitempty"`
	VoteGranted  bool   `json:"voteGranted,omitempty"`

	// appendEntry
	PrevLogIndex      int64              `json:"prevLogIndex,omitempty"`
	PrevLogTerm       int64              `json:"prevLogTerm,omitempty"`
	LeaderCommit      int64              `json:"leaderCommit,omitempty"`
	LeaderLastApplied int64              `json:"leaderLastApplied,omitempty"`
	Entries           []raftlog.LogEntry `json:"entries,omitempty"`

	// confirmation
	Success               bool  `json:"success,omitempty"`
	FollowerPrevLastIndex int64 `json:"followerPrevLastIndex,omitempty"`
	FollowerPrevLastTerm  int64 `json:"followerPrevLastTerm,omitempty"`
}
