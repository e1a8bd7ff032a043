package domain

import (
	"testing"
	"time"
)

func TestSessionStats_HasHistory(t *testing.T) {
	if (SessionStats{}).HasHistory() {
		t.Error("empty stats should report no history")
	}

	last := time.Date(2024, 3, 8, 18, 0, 0, 0, time.UTC)
	if !(SessionStats{LastSessionAt: &last}).HasHistory() {
		t.Error("stats with a last session should report history")
	}
}
