package clientapitests

import "testing"
import "time"

import "github.com/tcondon31/3700kvstore/pkg/clientapi"
import "github.com/tcondon31/3700kvstore/pkg/raftlog"
import "github.com/tcondon31/3700kvstore/pkg/replica"
import "github.com/tcondon31/3700kvstore/pkg/wire"


func SetupMockLeader(myID string, peerIDs []string) *replica.Replica {
	r := replica.NewReplica(myID, peerIDs, time.Second)
	r.CurrentTerm = 1
	r.TransitionToLeader()

	return r
}

func TestNonLeaderRedirectsGet(t *testing.T) {
	r := replica.NewReplica("B", []string{"A", "C"}, time.Second)
	r.CurrentLeader = "A"

	replies := clientapi.HandleGet(r, &wire.Envelope{Src: "client-1", MID: "m1", Key: "x"})

	expectedCount := 1
	t.Logf("actual reply count: %d, expected reply count: %d\n", len(replies), expectedCount)
	if len(replies) != expectedCount {
		t.Errorf("actual reply count not equal to expected: actual(%d), expected(%d)\n", len(replies), expectedCount)
	}

	t.Logf("actual type: %s, expected type: %s\n", replies[0].Type, wire.Redirect)
	if replies[0].Type != wire.Redirect {
		t.Errorf("actual type not equal to expected: actual(%s), expected(%s)\n", replies[0].Type, wire.Redirect)
	}

	t.Logf("actual leader: %s, expected leader: %s\n", replies[0].Leader, "A")
	if replies[0].Leader != "A" {
		t.Errorf("actual leader not equal to expected: actual(%s), expected(%s)\n", replies[0].Leader, "A")
	}
}

func TestRedirectSubstitutesSelfWhenLeaderUnknown(t *testing.T) {
	r := replica.NewReplica("B", []string{"A", "C"}, time.Second)

	replies := clientapi.HandleGet(r, &wire.Envelope{Src: "client-1", MID: "m1", Key: "x"})

	t.Logf("actual leader: %s, expected leader: %s\n", replies[0].Leader, "B")
	if replies[0].Leader != "B" {
		t.Errorf("actual leader not equal to expected: actual(%s), expected(%s)\n", replies[0].Leader, "B")
	}
}

func TestLeaderGetAnswersImmediatelyWhenCaughtUp(t *testing.T) {
	r := SetupMockLeader("A", []string{"B", "C"})
	r.Log.Append(raftlog.LogEntry{Term: 1, Key: "x", Value: "1"})
	r.CommitIndex = r.Log.LastIndex()
	r.StateMachine.Apply(raftlog.LogEntry{Key: "x", Value: "1"})

	replies := clientapi.HandleGet(r, &wire.Envelope{Src: "client-1", MID: "m1", Key: "x"})

	expectedCount := 1
	t.Logf("actual reply count: %d, expected reply count: %d\n", len(replies), expectedCount)
	if len(replies) != expectedCount {
		t.Errorf("actual reply count not equal to expected: actual(%d), expected(%d)\n", len(replies), expectedCount)
	}

	t.Logf("actual value: %s, expected value: %s\n", replies[0].Value, "1")
	if replies[0].Value != "1" {
		t.Errorf("actual value not equal to expected: actual(%s), expected(%s)\n", replies[0].Value, "1")
	}
}

func TestLeaderGetQueuesBehindUncommittedWrite(t *testing.T) {
	r := SetupMockLeader("A", []string{"B", "C"})
	r.Log.Append(raftlog.LogEntry{Term: 1, Key: "x", Value: "1"})

	replies := clientapi.HandleGet(r, &wire.Envelope{Src: "client-1", MID: "m1", Key: "x"})

	expectedCount := 0
	t.Logf("actual reply count: %d, expected reply count: %d\n", len(replies), expectedCount)
	if len(replies) != expectedCount {
		t.Errorf("actual reply count not equal to expected: actual(%d), expected(%d)\n", len(replies), expectedCount)
	}

	expectedQueueLen := 1
	t.Logf("actual queue len: %d, expected queue len: %d\n", len(r.GetQueue), expectedQueueLen)
	if len(r.GetQueue) != expectedQueueLen {
		t.Errorf("actual queue len not equal to expected: actual(%d), expected(%d)\n", len(r.GetQueue), expectedQueueLen)
	}
}

func TestDrainQueueAnswersCommittedReadsOnly(t *testing.T) {
	r := SetupMockLeader("A", []string{"B", "C"})
	r.Log.Append(raftlog.LogEntry{Term: 1, Key: "x", Value: "1"})

	r.GetQueue = append(r.GetQueue, replica.GetQueueEntry{
		Src:           "client-1",
		MID:           "m1",
		Key:           "x",
		IndexReceived: r.Log.LastIndex(),
	})

	drained := clientapi.DrainQueue(r)
	if len(drained) != 0 {
		t.Errorf("actual drain answered an uncommitted read: %+v\n", drained)
	}

	r.CommitIndex = r.Log.LastIndex()
	r.StateMachine.Apply(raftlog.LogEntry{Key: "x", Value: "1"})

	drained = clientapi.DrainQueue(r)

	expectedCount := 1
	t.Logf("actual drained count: %d, expected drained count: %d\n", len(drained), expectedCount)
	if len(drained) != expectedCount {
		t.Errorf("actual drained count not equal to expected: actual(%d), expected(%d)\n", len(drained), expectedCount)
	}

	if len(r.GetQueue) != 0 {
		t.Errorf("actual queue not emptied after drain: len(%d)\n", len(r.GetQueue))
	}
}

func TestHandlePutAppendsEntryOnLeader(t *testing.T) {
	r := SetupMockLeader("A", []string{"B", "C"})

	reply := clientapi.HandlePut(r, &wire.Envelope{Src: "client-1", MID: "m1", Key: "x", Value: "1"})
	if reply != nil {
		t.Errorf("actual reply non-nil for a leader put, ok is only sent after commit: %+v\n", reply)
	}

	expectedLast := int64(1)
	t.Logf("actual last index: %d, expected last index: %d\n", r.Log.LastIndex(), expectedLast)
	if r.Log.LastIndex() != expectedLast {
		t.Errorf("actual last index not equal to expected: actual(%d), expected(%d)\n", r.Log.LastIndex(), expectedLast)
	}
}
