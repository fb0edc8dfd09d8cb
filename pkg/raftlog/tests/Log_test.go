package raftlogtests

import "testing"

import "github.com/tcondon31/3700kvstore/pkg/raftlog"


func SetupMockLogWithEntries() *raftlog.Log {
	log := raftlog.NewLog()

	log.Append(raftlog.LogEntry{Term: 1, Key: "x", Value: "1"})
	log.Append(raftlog.LogEntry{Term: 2, Key: "y", Value: "2"})
	log.Append(raftlog.LogEntry{Term: 2, Key: "z", Value: "3"})

	return log
}

func TestNewLogStartsWithSentinel(t *testing.T) {
	log := raftlog.NewLog()

	expectedLen := int64(1)
	t.Logf("actual len: %d, expected len: %d\n", log.Len(), expectedLen)
	if log.Len() != expectedLen {
		t.Errorf("actual len not equal to expected: actual(%d), expected(%d)\n", log.Len(), expectedLen)
	}

	expectedTerm := int64(1)
	t.Logf("actual sentinel term: %d, expected term: %d\n", log.TermAt(0), expectedTerm)
	if log.TermAt(0) != expectedTerm {
		t.Errorf("actual sentinel term not equal to expected: actual(%d), expected(%d)\n", log.TermAt(0), expectedTerm)
	}
}

func TestAppendAdvancesLastIndex(t *testing.T) {
	log := SetupMockLogWithEntries()

	expectedLast := int64(3)
	t.Logf("actual last index: %d, expected last index: %d\n", log.LastIndex(), expectedLast)
	if log.LastIndex() != expectedLast {
		t.Errorf("actual last index not equal to expected: actual(%d), expected(%d)\n", log.LastIndex(), expectedLast)
	}

	expectedTerm := int64(2)
	t.Logf("actual last term: %d, expected last term: %d\n", log.LastTerm(), expectedTerm)
	if log.LastTerm() != expectedTerm {
		t.Errorf("actual last term not equal to expected: actual(%d), expected(%d)\n", log.LastTerm(), expectedTerm)
	}
}

func TestSliceClampsToLogBounds(t *testing.T) {
	log := SetupMockLogWithEntries()

	entries := log.Slice(2, 100)

	expectedLen := 2
	t.Logf("actual slice len: %d, expected slice len: %d\n", len(entries), expectedLen)
	if len(entries) != expectedLen {
		t.Errorf("actual slice len not equal to expected: actual(%d), expected(%d)\n", len(entries), expectedLen)
	}
}

func TestTruncateAndExtendReplacesTail(t *testing.T) {
	log := SetupMockLogWithEntries()

	log.TruncateAndExtend(2, []raftlog.LogEntry{
		{Term: 3, Key: "w", Value: "9"},
	})

	expectedLast := int64(2)
	t.Logf("actual last index: %d, expected last index: %d\n", log.LastIndex(), expectedLast)
	if log.LastIndex() != expectedLast {
		t.Errorf("actual last index not equal to expected: actual(%d), expected(%d)\n", log.LastIndex(), expectedLast)
	}

	entry := log.EntryAt(2)
	expectedKey := "w"
	t.Logf("actual key: %s, expected key: %s\n", entry.Key, expectedKey)
	if entry.Key != expectedKey {
		t.Errorf("actual key not equal to expected: actual(%s), expected(%s)\n", entry.Key, expectedKey)
	}
}
