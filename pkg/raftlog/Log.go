package raftlog

import "github.com/tcondon31/3700kvstore/pkg/utils"


//=========================================== Replicated Log


/*
	Log:
		an ordered, in-memory sequence of LogEntry, indexed from 0. index 0 always
		holds the sentinel entry so "previous entry of the first real entry" never
		needs special-casing. non-goals exclude on-disk persistence and
		snapshotting, so this is nothing more than a guarded slice
*/

type Log struct {
	entries []LogEntry
}

func NewLog() *Log {
	return &Log{
		entries: []LogEntry{sentinelEntry},
	}
}

/*
	Len:
		number of entries including the sentinel. log.len()-1 is the "last index"
		used throughout election and replication
*/

func (l *Log) Len() int64 {
	return int64(len(l.entries))
}

/*
	LastIndex/LastTerm:
		convenience pair used by both the election and replication subsystems
*/

func (l *Log) LastIndex() int64 {
	return l.Len() - 1
}

func (l *Log) LastTerm() int64 {
	return l.TermAt(l.LastIndex())
}

/*
	EntryAt/TermAt:
		checked index access. out-of-range indices are a programmer error and
		panic -- together with TruncateAndExtend's start check, this is the only
		place the log enforces its own invariants, since callers are expected to
		clamp against Len() first
*/

func (l *Log) EntryAt(index int64) LogEntry {
	if index < 0 || index >= l.Len() {
		panic("raftlog: index out of range")
	}

	return l.entries[index]
}

func (l *Log) TermAt(index int64) int64 {
	return l.EntryAt(index).Term
}

/*
	Append:
		add a single entry at the end of the log. used by the leader on a client
		put
*/

func (l *Log) Append(entry LogEntry) int64 {
	l.entries = append(l.entries, entry)
	return l.LastIndex()
}

/*
	Slice:
		entries in [start, end), used by the replication subsystem to build the
		batch of entries to send to a lagging peer
*/

func (l *Log) Slice(start, end int64) []LogEntry {
	start = utils.Max[int64](start, 0)
	end = utils.Min[int64](end, l.Len())
	if start >= end {
		return nil
	}

	out := make([]LogEntry, end-start)
	copy(out, l.entries[start:end])

	return out
}

/*
	TruncateAndExtend:
		replace log[start:] with the given entries. used by a follower splicing
		in a leader's appendEntry payload once prevLogIndex/prevLogTerm agree
*/

func (l *Log) TruncateAndExtend(start int64, entries []LogEntry) {
	if start < 0 || start > l.Len() {
		panic("raftlog: truncate start out of range")
	}

	l.entries = append(l.entries[:start:start], entries...)
}
