package clientapi

import "github.com/tcondon31/3700kvstore/pkg/raftlog"
import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/utils"
import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Client Request Pipeline


/*
	redirect:
		built for any get/put received while not Leader. the replica substitutes
		its own id when the current leader is unknown, giving the client
		somewhere to retry against
*/

func redirect(r *replica.Replica, msg *wire.Envelope) *wire.Envelope {
	leader := r.CurrentLeader
	if leader == replica.Unknown {
		leader = r.MyID
	}

	return &wire.Envelope{
		Src:    r.MyID,
		Dst:    msg.Src,
		Leader: leader,
		Type:   wire.Redirect,
		MID:    msg.MID,
	}
}

/*
	HandleGet:
		a non-leader always redirects. a leader whose commit_index trails the
		log enqueues the read behind the in-flight writes instead of risking a
		stale answer; otherwise the pending queue is drained first (in queue
		order) and this read is answered immediately alongside it
*/

func HandleGet(r *replica.Replica, msg *wire.Envelope) []*wire.Envelope {
	if !r.IsLeader() {
		return []*wire.Envelope{redirect(r, msg)}
	}

	if r.CommitIndex < r.Log.LastIndex() {
		r.GetQueue = append(r.GetQueue, replica.GetQueueEntry{
			Src:           msg.Src,
			MID:           msg.MID,
			Key:           msg.Key,
			IndexReceived: r.Log.LastIndex(),
		})
		return nil
	}

	drained := DrainQueue(r)

	answer := &wire.Envelope{
		Src:    r.MyID,
		Dst:    msg.Src,
		Leader: r.CurrentLeader,
		Type:   wire.Ok,
		MID:    msg.MID,
		Value:  r.StateMachine.Lookup(msg.Key),
	}

	return append(drained, answer)
}

/*
	HandlePut:
		a non-leader redirects. a leader appends the entry and leaves dispatch
		to the caller (replication.DispatchAppendEntries) -- the client's ok is
		never sent here, only once the entry is actually applied
		(replication.applyCommitted)
*/

func HandlePut(r *replica.Replica, msg *wire.Envelope) *wire.Envelope {
	if !r.IsLeader() {
		return redirect(r, msg)
	}

	r.Log.Append(raftlog.LogEntry{
		Term:      r.CurrentTerm,
		Key:       msg.Key,
		Value:     msg.Value,
		ClientID:  msg.Src,
		RequestID: msg.MID,
	})

	return nil
}

/*
	DrainQueue:
		answers every queued read whose IndexReceived has since committed and
		removes them from r.GetQueue, in queue order
*/

func DrainQueue(r *replica.Replica) []*wire.Envelope {
	committed := func(entry replica.GetQueueEntry) bool { return entry.IndexReceived <= r.CommitIndex }
	uncommitted := func(entry replica.GetQueueEntry) bool { return !committed(entry) }

	toAnswer := utils.Filter[replica.GetQueueEntry](r.GetQueue, committed)
	r.GetQueue = utils.Filter[replica.GetQueueEntry](r.GetQueue, uncommitted)

	toEnvelope := func(entry replica.GetQueueEntry) *wire.Envelope {
		return &wire.Envelope{
			Src:    r.MyID,
			Dst:    entry.Src,
			Leader: r.CurrentLeader,
			Type:   wire.Ok,
			MID:    entry.MID,
			Value:  r.StateMachine.Lookup(entry.Key),
		}
	}

	return utils.Map[replica.GetQueueEntry, *wire.Envelope](toAnswer, toEnvelope)
}
