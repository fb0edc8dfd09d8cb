package replication

import "k8s.io/utils/ptr"

import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/utils"
import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Follower-side Replication


/*
	HandleAppendEntry:
		the follower-side appendEntry handler. returns the confirmation to send,
		or nil for any heartbeat (empty entries), which never gets a reply
*/

func HandleAppendEntry(r *replica.Replica, msg *wire.Envelope) *wire.Envelope {
	if len(msg.Entries) == 0 {
		return handleHeartbeat(r, msg)
	}

	followerPLI := utils.Min[int64](r.Log.LastIndex(), msg.PrevLogIndex)
	followerPLT := r.Log.TermAt(followerPLI)

	if r.CurrentTerm <= msg.Term {
		term := msg.Term
		r.TransitionToFollower(replica.StateTransitionOpts{
			CurrentTerm: &term,
			Leader:      ptr.To(msg.Leader),
		})
	}

	if followerPLI == msg.PrevLogIndex && followerPLT == msg.PrevLogTerm {
		return acceptEntries(r, msg)
	}

	return rejectEntries(r, msg, followerPLI)
}

/*
	handleHeartbeat:
		an empty-entries appendEntry only resets this replica to Follower
		when its term is at least ours; otherwise it is a stale heartbeat from a
		leader that has since lost its term and is ignored entirely -- no reply
*/

func handleHeartbeat(r *replica.Replica, msg *wire.Envelope) *wire.Envelope {
	if r.CurrentTerm > msg.Term {
		return nil
	}

	term := msg.Term
	r.TransitionToFollower(replica.StateTransitionOpts{
		CurrentTerm: &term,
		Leader:      ptr.To(msg.Leader),
	})

	return nil
}

/*
	acceptEntries:
		the log-matches branch: splice in the leader's entries, advance
		commit_index, and apply at most one entry
*/

func acceptEntries(r *replica.Replica, msg *wire.Envelope) *wire.Envelope {
	r.Log.TruncateAndExtend(msg.PrevLogIndex+1, msg.Entries)

	newLast := r.Log.LastIndex()

	// clamped to this replica's own log and never allowed to regress: a
	// newly-elected leader's commit_index can briefly trail what this
	// follower already committed under the previous leader
	r.CommitIndex = utils.Max[int64](r.CommitIndex, utils.Min[int64](msg.LeaderCommit, newLast))

	if r.LastApplied < r.CommitIndex {
		r.LastApplied++
		entry := r.Log.EntryAt(r.LastApplied)
		r.StateMachine.Apply(entry)
	}

	return &wire.Envelope{
		Src:                   r.MyID,
		Dst:                   msg.Src,
		Leader:                r.CurrentLeader,
		Type:                  wire.Confirmation,
		Term:                  r.CurrentTerm,
		Success:               true,
		FollowerPrevLastIndex: newLast,
		FollowerPrevLastTerm:  r.Log.TermAt(newLast),
	}
}

/*
	rejectEntries:
		the log-mismatch branch: walk the leader's claimed prevLogIndex down
		until it is at most our own last index, refresh the term at that
		position, and report both back so the leader can rewind next_index
*/

func rejectEntries(r *replica.Replica, msg *wire.Envelope, followerPLI int64) *wire.Envelope {
	claimed := msg.PrevLogIndex
	for claimed > followerPLI {
		claimed--
	}

	return &wire.Envelope{
		Src:                   r.MyID,
		Dst:                   msg.Src,
		Leader:                r.CurrentLeader,
		Type:                  wire.Confirmation,
		Term:                  r.CurrentTerm,
		Success:               false,
		FollowerPrevLastIndex: claimed,
		FollowerPrevLastTerm:  r.Log.TermAt(claimed),
	}
}
