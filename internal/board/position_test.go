package board

import "testing"

func TestNewPositionMatchesStartFEN(t *testing.T) {
	pos := NewPosition()
	if pos.SideToMove != White {
		t.Errorf("expected White to move, got %v", pos.SideToMove)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("expected all castling rights, got %v", pos.CastlingRights)
	}
	if pos.byColor(Pawn, White).PopCount() != 8 || pos.byColor(Pawn, Black).PopCount() != 8 {
		t.Errorf("expected 8 pawns per side")
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("starting position failed validation: %v", err)
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	pos := NewPosition()
	before := *pos

	moves := pos.GenerateAll()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo, ok := pos.MakeMove(m)
		if !ok {
			t.Fatalf("legal move %v rejected by MakeMove", m)
		}
		pos.UnmakeMove(m, undo)

		if pos.Hash != before.Hash {
			t.Fatalf("hash mismatch after make/unmake of %v: got %x want %x", m, pos.Hash, before.Hash)
		}
		if pos.Pieces != before.Pieces || pos.Black != before.Black {
			t.Fatalf("piece bitboards mismatch after make/unmake of %v", m)
		}
		if pos.CastlingRights != before.CastlingRights {
			t.Fatalf("castling rights mismatch after make/unmake of %v", m)
		}
	}
}

func TestHashMatchesRecomputation(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}

	moves := pos.GenerateAll()
	for i := 0; i < moves.Len() && i < 10; i++ {
		m := moves.Get(i)
		undo, ok := pos.MakeMove(m)
		if !ok {
			continue
		}
		if got, want := pos.Hash, pos.ComputeHash(); got != want {
			t.Errorf("incremental hash %x does not match recomputed hash %x after %v", got, want, m)
		}
		pos.UnmakeMove(m, undo)
	}
}

func TestCapturesAndQuietPartitionGenerateAll(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}

	all := pos.GenerateAll()
	captures := pos.GenerateCaptures()
	quiet := pos.GenerateQuiet()

	if captures.Len()+quiet.Len() != all.Len() {
		t.Errorf("captures (%d) + quiet (%d) != all (%d)", captures.Len(), quiet.Len(), all.Len())
	}

	for i := 0; i < captures.Len(); i++ {
		if quiet.Contains(captures.Get(i)) {
			t.Errorf("move %v present in both captures and quiet", captures.Get(i))
		}
	}
}

func TestIsLegalMatchesIsLegalFast(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}

	pinned := pos.ComputePinned()
	pseudo := pos.GeneratePseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		fast := pos.IsLegalFast(m, pinned)
		oracle := pos.IsLegal(m)
		if fast != oracle {
			t.Errorf("IsLegalFast/IsLegal disagree on %v: fast=%v oracle=%v", m, fast, oracle)
		}
	}
}

func TestComputePinnedDetectsClassicPin(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/4r3/8/4N3/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	pinned := pos.ComputePinned()
	if pinned&SquareBB(E3) == 0 {
		t.Errorf("expected knight on e3 to be pinned, pinned mask = %v", pinned)
	}
}
