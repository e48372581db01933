package board

import "testing"

func TestDefaultTrack(t *testing.T) {
	b := Default()
	if got := b.LastPlayableSpace(); got != 33 {
		t.Fatalf("last playable space = %d, want 33", got)
	}
	if got := b.RewardAt(10).Money; got != 10 {
		t.Fatalf("money at 10 = %d, want 10", got)
	}
	if !b.RewardAt(33).Ruby {
		t.Fatal("expected a ruby on the final space")
	}
	if b.RewardAt(0).Points != 0 {
		t.Fatal("starting space should score no points")
	}
}

func TestRewardAtClamps(t *testing.T) {
	b := Default()
	if b.RewardAt(100) != b.RewardAt(33) {
		t.Fatal("overshoot did not clamp to the last space")
	}
	if b.RewardAt(-5) != b.RewardAt(0) {
		t.Fatal("negative position did not clamp to the start")
	}
}

func TestEmptyBoard(t *testing.T) {
	var b Board
	if b.LastPlayableSpace() != 0 {
		t.Fatal("empty board should report space 0")
	}
	if b.RewardAt(3) != (Space{}) {
		t.Fatal("empty board should return a zero reward")
	}
}
