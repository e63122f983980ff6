package search

import (
	"time"

	"github.com/hailam/matefind/internal/board"
)

// DepthReport is delivered once per iterative-deepening depth, giving
// the caller everything the per-depth output line needs: accumulated
// node counts, elapsed time for this depth, and whether mate was
// found.
type DepthReport struct {
	Depth         int
	LeafNodes     uint64
	InteriorNodes uint64
	MateNodes     uint64
	Elapsed       time.Duration
	Score         int
	Move          board.Move
	MateFound     bool
}

// Config bundles the tunables the iterative-deepening loop and its
// Lazy SMP driver need.
type Config struct {
	TTBits     int
	MaxThreads int
	UseTT      bool
	UseLazySMP bool
	MaxDepth   int
}

// Run performs iterative deepening from depth 0 up to cfg.MaxDepth,
// calling report after every depth. It stops as soon as the root
// score is +1 or -1 and returns the move and score from that depth;
// otherwise it exhausts cfg.MaxDepth and returns the deepest result,
// which will be 0 ("no mate found").
func Run(pos *board.Position, cfg Config, report func(DepthReport)) (board.Move, int) {
	tt := NewTranspositionTable(cfg.TTBits)
	driver := NewDriver(tt, cfg.UseTT, cfg.UseLazySMP, cfg.MaxThreads)

	var leafTotal, interiorTotal, mateTotal uint64
	var bestMove board.Move
	var bestScore int

	for depth := 0; depth <= cfg.MaxDepth; depth++ {
		start := time.Now()
		result := driver.SearchDepth(pos, depth)
		elapsed := time.Since(start)

		leafTotal += result.LeafNodes
		interiorTotal += result.InteriorNodes
		mateTotal += result.MateNodes

		bestMove = result.Move
		bestScore = result.Score
		mateFound := result.Score == 1 || result.Score == -1

		if report != nil {
			report(DepthReport{
				Depth:         depth,
				LeafNodes:     leafTotal,
				InteriorNodes: interiorTotal,
				MateNodes:     mateTotal,
				Elapsed:       elapsed,
				Score:         result.Score,
				Move:          result.Move,
				MateFound:     mateFound,
			})
		}

		if mateFound {
			break
		}
	}

	return bestMove, bestScore
}
