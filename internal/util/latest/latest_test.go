package latest_test

import (
	"testing"

	"cordlink/internal/util/latest"
)

func TestCell_EmptyUntilPublish(t *testing.T) {
	c := latest.New[int]()

	if _, ok := c.Load(); ok {
		t.Fatal("empty cell reported a value")
	}

	c.Publish(7)
	v, ok := c.Load()
	if !ok || v != 7 {
		t.Fatalf("Load = (%d, %v), want (7, true)", v, ok)
	}
}

func TestCell_LatestValueWins(t *testing.T) {
	c := latest.New[string]()

	c.Publish("first")
	c.Publish("second")
	c.Publish("third")

	v, ok := c.Load()
	if !ok || v != "third" {
		t.Fatalf("Load = (%q, %v), want (\"third\", true)", v, ok)
	}

	// Burst of publishes coalesces into at most one pending signal.
	select {
	case <-c.Changes():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-c.Changes():
		t.Fatal("signals were not coalesced")
	default:
	}
}

func TestCell_PublishNeverBlocks(t *testing.T) {
	c := latest.New[int]()

	// No reader ever drains the channel; publishing must still return.
	for i := 0; i < 100; i++ {
		c.Publish(i)
	}
	v, _ := c.Load()
	if v != 99 {
		t.Fatalf("Load = %d, want 99", v)
	}
}
