package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: flag nibble, the classic 0-15 move-flag encoding
type Move uint16

// Move flags. Every flag with bit 3 (0x8) set is a promotion; every
// flag with bit 2 (0x4) set is a capture (en passant included).
const (
	FlagQuiet         uint16 = 0
	FlagDoublePush    uint16 = 1
	FlagCastleKing    uint16 = 2
	FlagCastleQueen   uint16 = 3
	FlagCapture       uint16 = 4
	FlagEnPassant     uint16 = 5
	FlagPromoKnight   uint16 = 8
	FlagPromoBishop   uint16 = 9
	FlagPromoRook     uint16 = 10
	FlagPromoQueen    uint16 = 11
	FlagPromoKnightX  uint16 = 12
	FlagPromoBishopX  uint16 = 13
	FlagPromoRookX    uint16 = 14
	FlagPromoQueenX   uint16 = 15
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

var promoFlagForPiece = map[PieceType]uint16{
	Knight: FlagPromoKnight,
	Bishop: FlagPromoBishop,
	Rook:   FlagPromoRook,
	Queen:  FlagPromoQueen,
}

var pieceForPromoFlag = map[uint16]PieceType{
	FlagPromoKnight:  Knight,
	FlagPromoBishop:  Bishop,
	FlagPromoRook:    Rook,
	FlagPromoQueen:   Queen,
	FlagPromoKnightX: Knight,
	FlagPromoBishopX: Bishop,
	FlagPromoRookX:   Rook,
	FlagPromoQueenX:  Queen,
}

func newMoveWithFlag(from, to Square, flag uint16) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

// NewMove creates a quiet (non-capture, non-special) move.
func NewMove(from, to Square) Move {
	return newMoveWithFlag(from, to, FlagQuiet)
}

// NewCapture creates a normal capture move.
func NewCapture(from, to Square) Move {
	return newMoveWithFlag(from, to, FlagCapture)
}

// NewDoublePush creates a two-square pawn advance.
func NewDoublePush(from, to Square) Move {
	return newMoveWithFlag(from, to, FlagDoublePush)
}

// NewPromotion creates a promotion move, capturing if capture is true.
func NewPromotion(from, to Square, promo PieceType, capture bool) Move {
	flag := promoFlagForPiece[promo]
	if capture {
		flag += 4 // FlagPromoKnight..Queen -> ...KnightX..QueenX
	}
	return newMoveWithFlag(from, to, flag)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return newMoveWithFlag(from, to, FlagEnPassant)
}

// NewCastling creates a castling move (the king's part of it).
func NewCastling(from, to Square, kingSide bool) Move {
	if kingSide {
		return newMoveWithFlag(from, to, FlagCastleKing)
	}
	return newMoveWithFlag(from, to, FlagCastleQueen)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move's flag nibble.
func (m Move) Flag() uint16 {
	return uint16(m>>12) & 0xF
}

// Promotion returns the promotion piece type. Only meaningful when
// IsPromotion is true.
func (m Move) Promotion() PieceType {
	return pieceForPromoFlag[m.Flag()]
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flag()&0x8 != 0
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	f := m.Flag()
	return f == FlagCastleKing || f == FlagCastleQueen
}

// IsKingSideCastle returns true if this is a kingside castle.
func (m Move) IsKingSideCastle() bool {
	return m.Flag() == FlagCastleKing
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCapture returns true if this move captures a piece, including en
// passant. This reads directly off the move's own flag rather than
// consulting the board, since the flag nibble is set at generation
// time specifically to avoid that lookup.
func (m Move) IsCapture() bool {
	return m.Flag()&0x4 != 0
}

// IsQuiet returns true if this is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return m.Flag() == FlagQuiet || m.Flag() == FlagDoublePush || m.IsCastling()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}

	return s
}

// ParseMove parses a UCI format move string against pos, so that
// castling/en-passant/promotion flags can be inferred.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()
	capture := !pos.IsEmpty(to)

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo, capture), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to, to.File() == 6), nil
	}

	if pt == Pawn && pos.EnPassantFile != NoEnPassantFile && to == enPassantTarget(pos) {
		return NewEnPassant(from, to), nil
	}

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		return NewDoublePush(from, to), nil
	}

	if capture {
		return NewCapture(from, to), nil
	}
	return NewMove(from, to), nil
}

// enPassantTarget reconstructs the target square implied by
// pos.EnPassantFile and the side to move (the rank is fixed by whose
// turn it is: rank 6 for a white-to-move capture of a black double
// push, rank 3 the other way).
func enPassantTarget(pos *Position) Square {
	rank := 5 // 0-indexed rank 6
	if pos.SideToMove == Black {
		rank = 2 // 0-indexed rank 3
	}
	return NewSquare(int(pos.EnPassantFile), rank)
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores information needed to undo a move, using a bulk
// snapshot of the piece bitboards rather than incremental XOR-undo.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassantFile  int8
	HalfMoveClock  int16
	Hash           uint64
	Checkers       Bitboard
	KingSquare     [2]Square
	Pieces         [6]Bitboard
	Black          Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard
}
