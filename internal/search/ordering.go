package search

import "github.com/hailam/matefind/internal/board"

// OrderedMoves returns the legal moves for pos in the bucket order
// negamax wants: when in check, the specialized evasion generator
// (already exhaustive, no further ordering is useful); otherwise
// checking moves first, then captures, then quiet moves, with any
// move appearing in an earlier bucket removed from later ones. The
// checking bucket holds only non-capturing checks (GenerateChecking
// does not generate captures), so a capture that gives check is
// searched in the captures bucket, not ahead of the other captures.
func OrderedMoves(pos *board.Position) *board.MoveList {
	if pos.InCheck() {
		return pos.GenerateOutOfCheck()
	}

	ordered := board.NewMoveList()

	checking := pos.GenerateChecking()
	for i := 0; i < checking.Len(); i++ {
		ordered.Add(checking.Get(i))
	}

	captures := pos.GenerateCaptures()
	for i := 0; i < captures.Len(); i++ {
		m := captures.Get(i)
		if !ordered.Contains(m) {
			ordered.Add(m)
		}
	}

	quiet := pos.GenerateQuiet()
	for i := 0; i < quiet.Len(); i++ {
		m := quiet.Get(i)
		if !ordered.Contains(m) {
			ordered.Add(m)
		}
	}

	return ordered
}
