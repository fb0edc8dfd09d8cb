package replication

import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/utils"
import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Leader-side Replication


/*
	Heartbeat:
		an empty-entries appendEntry broadcast to FFFF, sent
		immediately on winning an election and whenever the event loop's socket
		wait times out while this replica is Leader (see the event loop's
		interpretation of "whenever needed to suppress follower timeouts")
*/

func Heartbeat(r *replica.Replica) *wire.Envelope {
	return &wire.Envelope{
		Src:          r.MyID,
		Dst:          wire.Broadcast,
		Leader:       r.CurrentLeader,
		Type:         wire.AppendEntry,
		Term:         r.CurrentTerm,
		LeaderCommit: r.CommitIndex,
	}
}

/*
	buildAppendEntry:
		leader append dispatch for a single peer. batches at most
		batchSize entries once the peer is more than batchThreshold behind, and
		optimistically advances next_index[peer] -- a later failing confirmation
		corrects it
*/

func buildAppendEntry(r *replica.Replica, peer string) *wire.Envelope {
	nextToSend := r.NextIndex[peer]
	prevLogIndex := nextToSend - 1
	prevLogTerm := r.Log.TermAt(prevLogIndex)

	end := r.Log.Len()
	if end-nextToSend > batchThreshold {
		end = nextToSend + batchSize
	}

	entries := r.Log.Slice(nextToSend, end)
	r.NextIndex[peer] = nextToSend + int64(len(entries))

	return &wire.Envelope{
		Src:               r.MyID,
		Dst:               peer,
		Leader:            r.CurrentLeader,
		Type:              wire.AppendEntry,
		Term:              r.CurrentTerm,
		PrevLogIndex:      prevLogIndex,
		PrevLogTerm:       prevLogTerm,
		LeaderCommit:      r.CommitIndex,
		LeaderLastApplied: r.LastApplied,
		Entries:           entries,
	}
}

/*
	DispatchAppendEntries:
		sent on any put or after successful confirmations -- one appendEntry
		per peer, built from that peer's own next_index cursor
*/

func DispatchAppendEntries(r *replica.Replica) []*wire.Envelope {
	out := make([]*wire.Envelope, 0, len(r.PeerIDs))
	for _, peer := range r.PeerIDs {
		out = append(out, buildAppendEntry(r, peer))
	}

	return out
}

/*
	AppliedEntry:
		one entry that crossed commit_index -> last_applied during a single
		HandleConfirmation call, paired with the client ok to send for it
*/

type AppliedEntry struct {
	Index int64
	Reply *wire.Envelope
}

/*
	HandleConfirmation:
		returns the client oks for newly-applied entries (empty on
		log-inconsistency rewinds; a future dispatch picks up the corrected
		cursor). no appendEntry is built here. stepDown reports whether the leader discovered a higher term and
		reset to Follower, in which case the caller must stop leader processing
*/

func HandleConfirmation(r *replica.Replica, msg *wire.Envelope) (applied []AppliedEntry, stepDown bool) {
	if r.CurrentTerm < msg.Term {
		term := msg.Term
		r.TransitionToFollower(replica.StateTransitionOpts{CurrentTerm: &term})
		return nil, true
	}

	if !r.IsLeader() {
		return nil, false
	}

	if !msg.Success {
		handleFailedConfirmation(r, msg)
		return nil, false
	}

	r.MatchIndex[msg.Src] = msg.FollowerPrevLastIndex

	advanceCommitIndex(r)

	return applyCommitted(r), false
}

/*
	handleFailedConfirmation:
		handles a failed confirmation. fpli/fplt are the follower's own last-entry
		cursor hints; rewind next_index[peer] to retry from the right place
*/

func handleFailedConfirmation(r *replica.Replica, msg *wire.Envelope) {
	peer := msg.Src
	fpli := msg.FollowerPrevLastIndex
	fplt := msg.FollowerPrevLastTerm

	if r.Log.TermAt(fpli) == fplt && r.MatchIndex[peer] <= fpli {
		r.NextIndex[peer] = fpli + 1
		r.MatchIndex[peer] = fpli
	} else {
		// never below 1: a failing confirmation must not be able to rewind
		// past the sentinel entry
		r.NextIndex[peer] = utils.Max[int64](fpli, 1)
	}

	Log.Info("rewinding next_index for", peer, "to", r.NextIndex[peer])
}

/*
	advanceCommitIndex:
		only entries from the current term are committed directly;
		earlier-term entries ride along once a current-term entry commits (Raft
		safety -- committing an old-term entry on vote count alone can be undone)
*/

func advanceCommitIndex(r *replica.Replica) {
	quorumFollowers := int64(r.ClusterSize() / 2)

	for next := r.CommitIndex + 1; next < r.Log.Len(); next++ {
		if r.Log.TermAt(next) != r.CurrentTerm {
			continue
		}

		matches := int64(0)
		for _, peer := range r.PeerIDs {
			if r.MatchIndex[peer] >= next {
				matches++
			}
		}

		if matches >= quorumFollowers {
			r.CommitIndex = next
		} else {
			break
		}
	}
}

/*
	applyCommitted:
		leader side: drain every newly-committable entry and pair
		each with the client ok to send back to its origin
*/

func applyCommitted(r *replica.Replica) []AppliedEntry {
	var applied []AppliedEntry

	for r.LastApplied < r.CommitIndex {
		r.LastApplied++
		entry := r.Log.EntryAt(r.LastApplied)
		r.StateMachine.Apply(entry)

		applied = append(applied, AppliedEntry{
			Index: r.LastApplied,
			Reply: &wire.Envelope{
				Src:    r.MyID,
				Dst:    entry.ClientID,
				Leader: r.CurrentLeader,
				Type:   wire.Ok,
				MID:    entry.RequestID,
			},
		})
	}

	return applied
}
