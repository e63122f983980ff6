package board

import "testing"

func TestMoveEncodingRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		m        Move
		from, to Square
		flag     uint16
	}{
		{"quiet", NewMove(E2, E4), E2, E4, FlagQuiet},
		{"double push", NewDoublePush(E2, E4), E2, E4, FlagDoublePush},
		{"capture", NewCapture(D4, E5), D4, E5, FlagCapture},
		{"en passant", NewEnPassant(E5, D6), E5, D6, FlagEnPassant},
		{"castle king", NewCastling(E1, G1, true), E1, G1, FlagCastleKing},
		{"castle queen", NewCastling(E1, C1, false), E1, C1, FlagCastleQueen},
		{"promo queen", NewPromotion(E7, E8, Queen, false), E7, E8, FlagPromoQueen},
		{"promo knight capture", NewPromotion(E7, D8, Knight, true), E7, D8, FlagPromoKnightX},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.m.From() != tc.from || tc.m.To() != tc.to || tc.m.Flag() != tc.flag {
				t.Fatalf("%s decoded as %v-%v flag %d, want %v-%v flag %d", tc.name, tc.m.From(), tc.m.To(), tc.m.Flag(), tc.from, tc.to, tc.flag)
			}
		})
	}
}

func TestMoveFlagsClassifyCorrectly(t *testing.T) {
	quiet := NewMove(E2, E4)
	if !quiet.IsQuiet() || quiet.IsCapture() || quiet.IsPromotion() {
		t.Errorf("quiet move misclassified: %+v", quiet)
	}

	capture := NewCapture(D4, E5)
	if !capture.IsCapture() || capture.IsQuiet() {
		t.Errorf("capture move misclassified")
	}

	ep := NewEnPassant(E5, D6)
	if !ep.IsCapture() || !ep.IsEnPassant() {
		t.Errorf("en passant move misclassified")
	}

	promoQuiet := NewPromotion(E7, E8, Queen, false)
	if !promoQuiet.IsPromotion() || promoQuiet.IsCapture() {
		t.Errorf("quiet promotion misclassified")
	}
	if promoQuiet.Promotion() != Queen {
		t.Errorf("wrong promotion piece: got %v", promoQuiet.Promotion())
	}

	promoCapture := NewPromotion(E7, D8, Rook, true)
	if !promoCapture.IsPromotion() || !promoCapture.IsCapture() {
		t.Errorf("promotion capture misclassified")
	}

	castle := NewCastling(E1, G1, true)
	if !castle.IsCastling() || !castle.IsKingSideCastle() || !castle.IsQuiet() {
		t.Errorf("kingside castle misclassified")
	}
}

func TestMoveStringUCI(t *testing.T) {
	m := NewMove(E2, E4)
	if got := m.String(); got != "e2e4" {
		t.Errorf("String() = %q, want e2e4", got)
	}

	promo := NewPromotion(E7, E8, Queen, false)
	if got := promo.String(); got != "e7e8q" {
		t.Errorf("String() = %q, want e7e8q", got)
	}

	if got := NoMove.String(); got != "0000" {
		t.Errorf("NoMove.String() = %q, want 0000", got)
	}
}

func TestParseMoveDetectsSpecialFlags(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}

	m, err := ParseMove("e1g1", pos)
	if err != nil {
		t.Fatalf("ParseMove failed: %v", err)
	}
	if !m.IsCastling() || !m.IsKingSideCastle() {
		t.Errorf("expected kingside castle, got %v (flag %d)", m, m.Flag())
	}

	m, err = ParseMove("e5d6", pos)
	if err != nil {
		t.Fatalf("ParseMove failed: %v", err)
	}
	if !m.IsEnPassant() {
		t.Errorf("expected en passant move, got %v (flag %d)", m, m.Flag())
	}
}
