package kvstore

import "github.com/tcondon31/3700kvstore/pkg/raftlog"


//=========================================== State Machine


/*
	StateMachine:
		a mapping from key to latest committed value. mutated solely by applying
		log entries in index order, and destroyed with the process -- there is no
		persistence or snapshotting, so this holds nothing but a plain map
*/

type StateMachine struct {
	data map[string]string
}

func NewStateMachine() *StateMachine {
	return &StateMachine{
		data: make(map[string]string),
	}
}

/*
	Apply:
		write entry.Key -> entry.Value. callers are responsible for applying in
		strict log order and exactly once per entry -- the state machine itself
		has no notion of index
*/

func (sm *StateMachine) Apply(entry raftlog.LogEntry) {
	sm.data[entry.Key] = entry.Value
}

/*
	Lookup:
		return the stored value for key, or the empty string if absent
*/

func (sm *StateMachine) Lookup(key string) string {
	return sm.data[key]
}
