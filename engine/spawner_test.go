package engine

import (
	"testing"

	"github.com/lixenwraith/fruit-drop/parameter"
)

func TestSpawnerDeterministic(t *testing.T) {
	a := NewSpawner(1234)
	b := NewSpawner(1234)
	for i := 0; i < 200; i++ {
		ceiling := i % 8
		va, vb := a.Next(ceiling), b.Next(ceiling)
		if va != vb {
			t.Fatalf("draw %d diverged: %d vs %d", i, va, vb)
		}
		if va < 0 || va > ceiling {
			t.Fatalf("draw %d = %d outside [0, %d]", i, va, ceiling)
		}
	}
}

func TestSpawnerCoversRange(t *testing.T) {
	s := NewSpawner(99)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		seen[s.Next(2)] = true
	}
	for tier := 0; tier <= 2; tier++ {
		if !seen[tier] {
			t.Errorf("tier %d never drawn", tier)
		}
	}
	if s.Next(-1) != 0 {
		t.Error("negative ceiling must draw tier 0")
	}
}

func TestSpawnerPop(t *testing.T) {
	s := NewSpawner(7)
	queue := parameter.InitialQueue

	front := s.Pop(&queue, 0)
	if front != 0 {
		t.Errorf("Pop front = %d, want 0", front)
	}
	want := [parameter.QueueLength]int{0, 1, 0}
	if queue != want {
		t.Errorf("queue after Pop = %v, want %v", queue, want)
	}
	if len(queue) != 3 {
		t.Errorf("queue length = %d, want 3", len(queue))
	}
}
