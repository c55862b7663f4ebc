package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinnedRookEngine sets up a rook shielding its king from an enemy queen
// on the same file.
func pinnedRookEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngine(t, size8(),
		place(King, 0, 4, 0),
		place(Rook, 0, 4, 1),
		place(Queen, 1, 4, 5),
	)
}

func TestPinnedRookStaysOnTheFile(t *testing.T) {
	eng := pinnedRookEngine(t)

	candidates, err := eng.CandidateMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.Len(t, candidates, 11)

	legal, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []Coord{
		XY(4, 2), XY(4, 3), XY(4, 4), XY(4, 5),
	}, destinations(legal))

	// The sideways step survives the candidate pass and dies in the
	// king-safety pass.
	assert.Contains(t, destinations(candidates), XY(3, 1))
	assert.NotContains(t, destinations(legal), XY(3, 1))
}

func TestKingCannotStepIntoAttackedSquare(t *testing.T) {
	eng := newTestEngine(t, size8(),
		place(King, 0, 4, 0),
		place(Rook, 1, 5, 7),
	)
	legal, err := eng.LegalMovesAt(XY(4, 0))
	require.NoError(t, err)
	// The whole x=5 file is covered by the rook.
	assert.ElementsMatch(t, []Coord{
		XY(3, 0), XY(3, 1), XY(4, 1),
	}, destinations(legal))
}

func TestTeamWithoutRoyalHasNoLegalityRestriction(t *testing.T) {
	eng := newTestEngine(t, size8(),
		place(Rook, 0, 4, 1),
		place(Queen, 1, 4, 5),
	)
	candidates, err := eng.CandidateMovesAt(XY(4, 1))
	require.NoError(t, err)
	legal, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, destinations(candidates), destinations(legal))
}

func TestLegalMovesAtEmptySquare(t *testing.T) {
	eng := NewDefault()
	legal, err := eng.LegalMovesAt(XY(4, 4))
	require.NoError(t, err)
	assert.Empty(t, legal)
}

func TestSimulationLeavesPositionUntouched(t *testing.T) {
	eng := pinnedRookEngine(t)
	before := eng.State()

	_, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)

	assert.Equal(t, before, eng.State())

	// Identity survives as well, not just equal values.
	rook, err := eng.PieceAt(XY(4, 1))
	require.NoError(t, err)
	_, err = eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	after, err := eng.PieceAt(XY(4, 1))
	require.NoError(t, err)
	assert.Same(t, rook, after)
}

func TestSimulationRestoresAfterReplyError(t *testing.T) {
	// A ruleless enemy piece makes reply generation fail mid-filter; the
	// board must still come back exactly.
	eng := newTestEngine(t, size8(),
		place(King, 0, 4, 0),
		place(Rook, 0, 4, 1),
		place("Z", 1, 0, 7),
	)
	before := eng.State()

	_, err := eng.LegalMovesAt(XY(4, 1))
	assert.True(t, errors.Is(err, ErrMissingRule))
	assert.Equal(t, before, eng.State())

	// Candidate queries stay usable since they never consult replies.
	candidates, err := eng.CandidateMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.NotEmpty(t, candidates)
}

func TestCachedListsAreStableAndDefensive(t *testing.T) {
	eng := pinnedRookEngine(t)

	first, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	second, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Scribbling on a returned slice never reaches the cache.
	require.NotEmpty(t, first)
	first[0] = Move{From: XY(0, 0), To: XY(7, 7)}
	third, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestCacheInvalidatedByMutation(t *testing.T) {
	eng := pinnedRookEngine(t)

	legal, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	require.Len(t, legal, 4)

	// Removing the enemy queen releases the pin.
	_, err = eng.RemovePiece(XY(4, 5))
	require.NoError(t, err)

	// 13 now: the file ray runs to the edge with the queen gone.
	freed, err := eng.LegalMovesAt(XY(4, 1))
	require.NoError(t, err)
	assert.Len(t, freed, 13)
}

func TestTryMoveIllegalMutatesNothing(t *testing.T) {
	eng := pinnedRookEngine(t)
	before := eng.State()

	ok, err := eng.TryMove(Move{From: XY(4, 1), To: XY(3, 1)})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, eng.State())

	// The legal file move still goes through afterwards.
	ok, err = eng.TryMove(Move{From: XY(4, 1), To: XY(4, 5)})
	require.NoError(t, err)
	assert.True(t, ok)
	captured, err := eng.PieceAt(XY(4, 5))
	require.NoError(t, err)
	assert.Equal(t, Rook, captured.ID)
}
