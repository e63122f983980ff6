package board

// GenerateOutOfCheck generates legal evasions when the side to move is
// in check. It is a specialization of GenerateAll that never bothers
// generating a move for a piece that cannot possibly help: in a double
// check only the king may move, and in a single check only moves that
// capture the checker or block its line to the king survive the fast
// legality filter anyway. Search calls this instead of GenerateAll
// whenever InCheck() is true.
func (p *Position) GenerateOutOfCheck() *MoveList {
	ml := NewMoveList()
	p.generateEvasions(ml)
	return p.filterLegalMoves(ml)
}

// generateEvasions produces pseudo-legal evasion candidates.
func (p *Position) generateEvasions(ml *MoveList) {
	us := p.SideToMove
	p.generateKingMoves(ml, us)

	if p.Checkers.PopCount() > 1 {
		// Double check: only the king can move.
		return
	}

	checker := p.Checkers.LSB()
	ksq := p.KingSquare[us]
	targets := SquareBB(checker) | Between(checker, ksq)

	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	pawns := p.byColor(Pawn, us)
	p.generatePawnEvasions(ml, us, pawns, targets, enemies, occupied)

	knights := p.byColor(Knight, us)
	for knights != 0 {
		from := knights.PopLSB()
		addAttacks(ml, p, from, KnightAttacks(from)&targets)
	}

	bishops := p.byColor(Bishop, us)
	for bishops != 0 {
		from := bishops.PopLSB()
		addAttacks(ml, p, from, BishopAttacks(from, occupied)&targets)
	}

	rooks := p.byColor(Rook, us)
	for rooks != 0 {
		from := rooks.PopLSB()
		addAttacks(ml, p, from, RookAttacks(from, occupied)&targets)
	}

	queens := p.byColor(Queen, us)
	for queens != 0 {
		from := queens.PopLSB()
		addAttacks(ml, p, from, QueenAttacks(from, occupied)&targets)
	}
}

// generatePawnEvasions handles pawn pushes/captures/en passant
// restricted to squares that block or capture the single checker.
func (p *Position) generatePawnEvasions(ml *MoveList, us Color, pawns, targets, enemies, occupied Bitboard) {
	empty := ^occupied
	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	push1 &= targets
	push2 &= targets
	attackL &= targets
	attackR &= targets

	nonPromo := push1 &^ promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir), to))
	}
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewDoublePush(Square(int(to)-2*pushDir), to))
	}
	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		ml.Add(NewCapture(Square(int(to)-pushDir+1), to))
	}
	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		ml.Add(NewCapture(Square(int(to)-pushDir-1), to))
	}
	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir), to, false)
	}
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir+1), to, true)
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		addPromotions(ml, Square(int(to)-pushDir-1), to, true)
	}

	if p.EnPassantFile != NoEnPassantFile {
		epSq := enPassantTarget(p)
		var capturedSq Square
		if us == White {
			capturedSq = epSq - 8
		} else {
			capturedSq = epSq + 8
		}
		// En passant is a valid evasion either when it captures the
		// checking pawn directly, or when the destination square
		// itself blocks the check (impossible for a pawn capture, but
		// checked for uniformity with the general target mask).
		if SquareBB(capturedSq)&p.Checkers != 0 || targets&SquareBB(epSq) != 0 {
			epBB := SquareBB(epSq)
			var epAttackers Bitboard
			if us == White {
				epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
			} else {
				epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
			}
			for epAttackers != 0 {
				ml.Add(NewEnPassant(epAttackers.PopLSB(), epSq))
			}
		}
	}
}

// GenerateChecking returns legal, non-capturing moves that give check
// to the opponent, whether directly (the moved piece itself attacks
// the enemy king) or by discovery (moving the piece unmasks a slider's
// attack on the enemy king that it was blocking). Both kinds of check
// belong in a mate search's move ordering: a discovered check is just
// as forcing as a direct one, and omitting it can make the search miss
// mates that route through it.
func (p *Position) GenerateChecking() *MoveList {
	ml := NewMoveList()
	p.generateDirectChecks(ml)
	p.generateDiscoveredChecks(ml)
	return p.filterLegalMoves(dedupe(ml))
}

// dedupe removes duplicate moves, which can occur when a move is both
// a direct and a discovered check (e.g. a rook move that both attacks
// the king on its new square and unmasks a bishop behind it).
func dedupe(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !result.Contains(m) {
			result.Add(m)
		}
	}
	return result
}

// generateDirectChecks generates pseudo-legal non-capture moves whose
// destination square itself attacks the enemy king.
func (p *Position) generateDirectChecks(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemyKing := p.KingSquare[them]
	occupied := p.AllOccupied
	empty := ^occupied

	knightCheckSquares := KnightAttacks(enemyKing) & empty
	knights := p.byColor(Knight, us)
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & knightCheckSquares
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	bishopCheckSquares := BishopAttacks(enemyKing, occupied) & empty
	bishops := p.byColor(Bishop, us)
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & bishopCheckSquares
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	rookCheckSquares := RookAttacks(enemyKing, occupied) & empty
	rooks := p.byColor(Rook, us)
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & rookCheckSquares
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	queenCheckSquares := bishopCheckSquares | rookCheckSquares
	queens := p.byColor(Queen, us)
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & queenCheckSquares
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	pawnCheckSquares := pawnAttacks[them][enemyKing] & empty
	pawns := p.byColor(Pawn, us)
	var push1 Bitboard
	var pushDir int
	if us == White {
		push1 = pawns.North() & empty
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		pushDir = -8
	}
	checkingPushes := push1 & pawnCheckSquares
	for checkingPushes != 0 {
		to := checkingPushes.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir), to))
	}
}

// generateDiscoveredChecks generates pseudo-legal non-capture moves of
// pieces that stand between an own slider and the enemy king, moved
// off the line the slider needs. Uses the same x-ray/sniper technique
// ComputePinned uses, but with the roles reversed from a pin: the
// sniper and the blocker are both ours, and the target is the enemy
// king rather than our own — computePinnedFor can't express that (it
// always looks for a blocker of the same color as the king it
// protects), so the sniper search is inlined here instead.
func (p *Position) generateDiscoveredChecks(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemyKingSq := p.KingSquare[them]

	occupied := p.AllOccupied
	empty := ^occupied

	discoverers := Bitboard(0)
	snipers := RookAttacks(enemyKingSq, 0) & (p.byColor(Rook, us) | p.byColor(Queen, us))
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, enemyKingSq) & occupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			discoverers |= blockers
		}
	}
	snipers = BishopAttacks(enemyKingSq, 0) & (p.byColor(Bishop, us) | p.byColor(Queen, us))
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, enemyKingSq) & occupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			discoverers |= blockers
		}
	}

	for discoverers != 0 {
		from := discoverers.PopLSB()
		piece := p.PieceAt(from)
		pt := piece.Type()

		if pt == Pawn {
			p.addDiscoveredPawnMoves(ml, from, us, empty, enemyKingSq)
			continue
		}

		var attacks Bitboard
		switch pt {
		case Knight:
			attacks = KnightAttacks(from) & empty
		case Bishop:
			attacks = BishopAttacks(from, occupied) & empty
		case Rook:
			attacks = RookAttacks(from, occupied) & empty
		case Queen:
			attacks = QueenAttacks(from, occupied) & empty
		case King:
			// Our king standing between our slider and the enemy king
			// discovers check by stepping off that line; whether the
			// destination is safe is left to filterLegalMoves.
			attacks = KingAttacks(from) & empty
		}

		for attacks != 0 {
			to := attacks.PopLSB()
			if Aligned(enemyKingSq, from, to) {
				continue
			}
			ml.Add(NewMove(from, to))
		}
	}
}

// addDiscoveredPawnMoves handles the pawn case of generateDiscoveredChecks
// separately since pushes need the double-push flag and promotion rank
// handled explicitly.
func (p *Position) addDiscoveredPawnMoves(ml *MoveList, from Square, us Color, empty Bitboard, enemyKingSq Square) {
	single := pawnPushes[us][from] & empty
	if single != 0 {
		to := single.LSB()
		if !Aligned(enemyKingSq, from, to) {
			if SquareBB(to)&(Rank1|Rank8) != 0 {
				addPromotions(ml, from, to, false)
			} else {
				ml.Add(NewMove(from, to))
			}
		}

		startRank := 1
		if us == Black {
			startRank = 6
		}
		if from.Rank() == startRank {
			double := pawnPushes[us][to] & empty
			if double != 0 {
				to2 := double.LSB()
				if !Aligned(enemyKingSq, from, to2) {
					ml.Add(NewDoublePush(from, to2))
				}
			}
		}
	}
}
