package isoabbrev

import (
	"reflect"
	"testing"
)

func TestRuleStoreKeepsInsertionOrder(t *testing.T) {
	s := newRuleStore(4)
	for _, id := range []int{3, 1, 2} {
		if err := s.Add(42, id); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	want := []int32{3, 1, 2}
	if got := s.Rules(42); !reflect.DeepEqual(got, want) {
		t.Fatalf("rules mismatch: got %v, want %v", got, want)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 ids, got %d", s.Len())
	}
}

func TestRuleStoreMissingPositions(t *testing.T) {
	s := newRuleStore(0)
	if s.Rules(7) != nil || s.Rules(-1) != nil || s.Rules(0) != nil {
		t.Fatalf("expected no rules at empty positions")
	}
	if err := s.Add(0, 1); err == nil {
		t.Fatalf("position 0 is reserved")
	}
	if err := s.Add(3, -1); err == nil {
		t.Fatalf("expected error for negative id")
	}
}
