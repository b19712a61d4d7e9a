// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewWorkerPool(-5)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 1000
	var hits [n]atomic.Int32
	pool.Run(n, func(i int) {
		hits[i].Add(1)
	})

	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("index %d ran %d times, want 1", i, got)
		}
	}
}

func TestWorkerPool_RunEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	// Should not panic or block
	pool.Run(0, func(int) { t.Error("fn called for n=0") })
	pool.Run(-3, func(int) { t.Error("fn called for n<0") })
}

func TestWorkerPool_RunAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	pool.Run(10, func(int) { counter.Add(1) })

	if counter.Load() != 10 {
		t.Errorf("counter = %d, want 10 (closed pool runs inline)", counter.Load())
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool still running after Close")
	}
}

// =============================================================================
// Fork-join Tests
// =============================================================================

func TestBatches(t *testing.T) {
	tests := []struct {
		name    string
		n, size int
		want    [][2]int
	}{
		{"empty", 0, 4, nil},
		{"single batch when size is zero", 5, 0, [][2]int{{0, 5}}},
		{"single batch when size exceeds n", 5, 10, [][2]int{{0, 5}}},
		{"even split", 6, 2, [][2]int{{0, 2}, {2, 4}, {4, 6}}},
		{"ragged tail", 7, 3, [][2]int{{0, 3}, {3, 6}, {6, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Batches(tt.n, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("Batches(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("batch %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMapBatches_PreservesBatchOrder(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	out := MapBatches(pool, 100, 7, func(start, end int) []int {
		s := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			s = append(s, i)
		}
		return s
	})

	next := 0
	for _, batch := range out {
		for _, v := range batch {
			if v != next {
				t.Fatalf("got %d, want %d", v, next)
			}
			next++
		}
	}
	if next != 100 {
		t.Errorf("collected %d items, want 100", next)
	}
}

func TestMapBatches_NilPool(t *testing.T) {
	out := MapBatches(nil, 10, 4, func(start, end int) int {
		return end - start
	})
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if out[0] != 4 || out[1] != 4 || out[2] != 2 {
		t.Errorf("batch sizes = %v, want [4 4 2]", out)
	}
}
