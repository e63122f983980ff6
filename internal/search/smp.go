package search

import (
	"golang.org/x/sync/errgroup"

	"github.com/hailam/matefind/internal/board"
)

// DriverResult is what the SMP driver reports for a single depth: the
// root score and move from the driver's own search, plus node counts
// accumulated across every worker (the driver included), since the
// whole point of the fan-out is that workers race to populate the
// shared TT, not that any one of them is individually authoritative.
type DriverResult struct {
	Score         int
	Move          board.Move
	LeafNodes     uint64
	InteriorNodes uint64
	MateNodes     uint64
}

// Driver runs a single iterative-deepening depth across N+1 searchers
// (N workers plus the driver itself) against a shared transposition
// table. Workers race each other into the TT; the driver's own result
// is the one returned. When UseLazySMP is false, only the driver
// searches and no worker goroutines are spawned.
type Driver struct {
	TT          *TranspositionTable
	UseTT       bool
	UseLazySMP  bool
	WorkerCount int
}

// NewDriver builds a Driver over a shared transposition table.
// workerCount is the number of helper goroutines spawned alongside the
// driver's own search (MAX_THREADS, default 16).
func NewDriver(tt *TranspositionTable, useTT, useLazySMP bool, workerCount int) *Driver {
	return &Driver{
		TT:          tt,
		UseTT:       useTT,
		UseLazySMP:  useLazySMP,
		WorkerCount: workerCount,
	}
}

// SearchDepth runs depth d to completion and returns the driver's
// result. The driver and every worker are launched together and run
// concurrently for the duration of the depth, each against its own
// copy of pos (MakeMove/UnmakeMove mutate it in place along the search
// path) but the same shared transposition table; only once all of them
// have returned is the driver's own result read back.
func (d *Driver) SearchDepth(pos *board.Position, depth int) DriverResult {
	driver := NewSearcher(d.TT, d.UseTT)

	g := errgroup.Group{}
	var workers []*Searcher
	if d.UseLazySMP && d.WorkerCount > 0 {
		for w := 0; w < d.WorkerCount; w++ {
			worker := NewSearcher(d.TT, d.UseTT)
			workers = append(workers, worker)
			g.Go(func() error {
				worker.Search(pos.Copy(), depth, -1, 1)
				return nil
			})
		}
	}

	var score int
	var move board.Move
	g.Go(func() error {
		score, move = driver.Search(pos.Copy(), depth, -1, 1)
		return nil
	})
	g.Wait()

	result := DriverResult{
		Score:         score,
		Move:          move,
		LeafNodes:     driver.LeafNodes,
		InteriorNodes: driver.InteriorNodes,
		MateNodes:     driver.MateNodes,
	}
	for _, w := range workers {
		result.LeafNodes += w.LeafNodes
		result.InteriorNodes += w.InteriorNodes
		result.MateNodes += w.MateNodes
	}
	return result
}
