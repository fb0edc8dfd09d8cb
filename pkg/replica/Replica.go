package replica

import "k8s.io/utils/ptr"

import clog "github.com/tcondon31/3700kvstore/pkg/logger"


const NAME = "Replica"

var Log = clog.NewCustomLog(NAME)


//=========================================== Role Transitions


/*
	StateTransitionOpts:
		optional fields for TransitionToFollower -- CurrentTerm and Leader are
		meaningfully absent (leave them as-is) rather than zero-valued, so they
		are carried as pointers via k8s.io/utils/ptr
*/

type StateTransitionOpts struct {
	CurrentTerm *int64
	Leader      *string
}

/*
	TransitionToCandidate:
		starting an election: role = Candidate, leader = Unknown,
		supporters = {self}, term += 1
*/

func (r *Replica) TransitionToCandidate() {
	r.Role = Candidate
	r.CurrentLeader = Unknown
	r.Supporters = map[string]bool{r.MyID: true}
	r.CurrentTerm++

	Log.Warn(r.MyID, "transitioned to candidate for term", r.CurrentTerm)
}

/*
	TransitionToLeader:
		winning an election: emitting the heartbeat is the caller's job
		(replication package); this only flips state and resets the leader-only
		cursors and read queue
*/

func (r *Replica) TransitionToLeader() {
	r.Role = Leader
	r.CurrentLeader = r.MyID

	r.NextIndex = make(map[string]int64)
	r.MatchIndex = make(map[string]int64)
	for _, peer := range r.PeerIDs {
		r.NextIndex[peer] = r.Log.Len()
		r.MatchIndex[peer] = 0
	}

	r.GetQueue = nil

	Log.Warn(r.MyID, "elected leader for term", r.CurrentTerm)
}

/*
	TransitionToFollower (reset_to_follower):
		clears supporters/cursors, adopts the given term/leader when present.
		VotedForTerm is untouched here -- it is only ever advanced by a granted
		vote (HandleRequestVote in the election package)
*/

func (r *Replica) TransitionToFollower(opts StateTransitionOpts) {
	r.Role = Follower
	r.Supporters = nil
	r.NextIndex = nil
	r.MatchIndex = nil

	if opts.CurrentTerm != nil {
		r.CurrentTerm = ptr.Deref(opts.CurrentTerm, r.CurrentTerm)
	}
	if opts.Leader != nil {
		r.CurrentLeader = ptr.Deref(opts.Leader, r.CurrentLeader)
	}

	Log.Warn(r.MyID, "transitioned to follower, term", r.CurrentTerm, "leader", r.CurrentLeader)
}

/*
	WithdrawCandidacy:
		handling a lost vote, the withdraw branch: undoes the term increment
		from TransitionToCandidate and falls back to Follower, as if the
		election never started
*/

func (r *Replica) WithdrawCandidacy() {
	r.Role = Follower
	r.Supporters = nil
	r.CurrentTerm--

	Log.Info(r.MyID, "withdrawing candidacy, reverting to term", r.CurrentTerm)
}
