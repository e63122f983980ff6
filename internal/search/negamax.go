package search

import "github.com/hailam/matefind/internal/board"

// Searcher runs one fail-hard negamax search against a (possibly
// shared) transposition table. Each Lazy SMP worker owns its own
// Searcher and its own node counters; the TT pointer is the only
// state multiple Searchers ever touch concurrently.
type Searcher struct {
	TT    *TranspositionTable
	UseTT bool

	LeafNodes     uint64
	InteriorNodes uint64
	MateNodes     uint64
}

// NewSearcher builds a Searcher over tt. Pass useTT=false to run the
// same search with TT probe/store disabled, for the TT-invariance
// property test.
func NewSearcher(tt *TranspositionTable, useTT bool) *Searcher {
	return &Searcher{TT: tt, UseTT: useTT}
}

// Search runs negamax from pos down to depth plies within window
// [alpha, beta] and returns the root score together with the move
// that produced it. pos is mutated and restored in place via
// MakeMove/UnmakeMove; the caller's copy is unchanged on return.
func (s *Searcher) Search(pos *board.Position, depth, alpha, beta int) (int, board.Move) {
	return s.negamax(pos, depth, alpha, beta)
}

// negamax is the recursive fail-hard alpha-beta search. Leaf behavior
// at depth 0 and interior behavior at depth > 0 follow the ternary
// scoring contract: -1 means the side to move here is checkmated, 0
// means no forced mate was found within the remaining depth, +1 (via
// negation on the way back up) means the side to move one ply higher
// can force it.
func (s *Searcher) negamax(pos *board.Position, depth, alpha, beta int) (int, board.Move) {
	if depth == 0 {
		s.LeafNodes++
		if pos.InCheck() && !pos.HasLegalMoves() {
			s.MateNodes++
			return -1, board.NoMove
		}
		return 0, board.NoMove
	}

	s.InteriorNodes++

	var probeKey uint64
	if s.UseTT {
		probeKey = board.ProbeKey(pos.Hash, depth)
		if entry, ok := s.TT.Probe(probeKey); ok {
			switch entry.Flag {
			case TTExact:
				return int(entry.Score), entry.Move
			case TTLowerBound:
				if int(entry.Score) >= beta {
					return int(entry.Score), entry.Move
				}
			case TTUpperBound:
				if int(entry.Score) <= alpha {
					return int(entry.Score), entry.Move
				}
			}
		}
	}

	inCheck := pos.InCheck()
	moves := OrderedMoves(pos)
	if moves.Len() == 0 {
		if inCheck {
			return -1, board.NoMove
		}
		return 0, board.NoMove
	}

	bestScore := -2 // below the ternary range; every legal move improves on it
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)

		undo, ok := pos.MakeMove(m)
		if !ok {
			continue
		}

		childScore, _ := s.negamax(pos, depth-1, -beta, -alpha)
		childScore = -childScore

		pos.UnmakeMove(m, undo)

		if childScore >= beta {
			if s.UseTT {
				s.TT.Store(probeKey, m, int8(childScore), TTLowerBound)
			}
			return beta, m
		}

		if childScore > bestScore {
			bestScore = childScore
			bestMove = m
			if childScore > alpha {
				alpha = childScore
				flag = TTExact
			}
		}
	}

	if s.UseTT {
		s.TT.Store(probeKey, bestMove, int8(bestScore), flag)
	}
	return alpha, bestMove
}
