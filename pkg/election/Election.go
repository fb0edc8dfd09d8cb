package election

import "time"

import "k8s.io/utils/ptr"

import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Election


/*
	StartElection:
		transitions the replica to Candidate and
		returns the broadcast requestVote to send
*/

func StartElection(r *replica.Replica) *wire.Envelope {
	r.TransitionToCandidate()

	return &wire.Envelope{
		Src:          r.MyID,
		Dst:          wire.Broadcast,
		Leader:       r.CurrentLeader,
		Type:         wire.RequestVote,
		Term:         r.CurrentTerm,
		CandidateID:  r.MyID,
		LastLogIndex: r.Log.LastIndex(),
		LastLogTerm:  r.Log.LastTerm(),
	}
}

/*
	HandleRequestVote:
		decision table, first match wins. returns the vote reply to send
*/

func HandleRequestVote(r *replica.Replica, msg *wire.Envelope) *wire.Envelope {
	myLast := r.Log.LastIndex()
	myLastTerm := r.Log.TermAt(myLast)

	reject := func() *wire.Envelope {
		return &wire.Envelope{
			Src:          r.MyID,
			Dst:          msg.Src,
			Leader:       r.CurrentLeader,
			Type:         wire.Vote,
			Term:         r.CurrentTerm,
			LastLogIndex: myLast,
			LastLogTerm:  myLastTerm,
			VoteGranted:  false,
		}
	}

	grant := func() *wire.Envelope {
		r.VotedForTerm = msg.Term

		return &wire.Envelope{
			Src:          r.MyID,
			Dst:          msg.Src,
			Leader:       r.CurrentLeader,
			Type:         wire.Vote,
			Term:         r.CurrentTerm,
			LastLogIndex: myLast,
			LastLogTerm:  myLastTerm,
			VoteGranted:  true,
		}
	}

	switch {
	case msg.Term <= r.VotedForTerm:
		return reject()

	case msg.LastLogTerm < myLastTerm:
		return reject()

	case msg.LastLogTerm > myLastTerm:
		reply := grant()
		r.TransitionToFollower(replica.StateTransitionOpts{})
		return reply

	case msg.LastLogIndex < myLast:
		return reject()

	case msg.LastLogIndex > myLast:
		reply := grant()
		r.TransitionToFollower(replica.StateTransitionOpts{})
		return reply

	case r.Role == replica.Candidate && r.CurrentTerm == msg.Term:
		return reject()

	case r.CurrentTerm >= msg.Term:
		return reject()

	default:
		reply := grant()
		term := msg.Term
		r.TransitionToFollower(replica.StateTransitionOpts{
			CurrentTerm: &term,
			Leader:      ptr.To(wire.Broadcast),
		})
		return reply
	}
}

/*
	HandleVote:
		ignored unless Candidate. returns true if this vote
		caused the candidate to withdraw (the caller should stop waiting on this
		election and let the next election timeout fire)
*/

func HandleVote(r *replica.Replica, msg *wire.Envelope) (withdrawn bool) {
	if r.Role != replica.Candidate {
		return false
	}

	if msg.VoteGranted {
		r.Supporters[msg.Src] = true
		return false
	}

	myLast := r.Log.LastIndex()
	myLastTerm := r.Log.TermAt(myLast)

	splitBetweenEquals := msg.LastLogIndex == myLast && msg.LastLogTerm == myLastTerm && msg.Term == r.CurrentTerm
	if splitBetweenEquals {
		return false
	}

	r.WithdrawCandidacy()
	r.ElectionTimeout += withdrawExtensionMs * time.Millisecond

	return true
}
