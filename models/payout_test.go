package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutForEvenMoney(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
	}{
		{"odd", Direction{Kind: DirectionOdd}},
		{"even", Direction{Kind: DirectionEven}},
		{"first half", Direction{Kind: DirectionFirstHalf}},
		{"second half", Direction{Kind: DirectionSecondHalf}},
		{"red", Direction{Kind: DirectionRed}},
		{"black", Direction{Kind: DirectionBlack}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := PayoutFor(tt.dir)
			require.NoError(t, err)
			assert.Len(t, info.Numbers, 18)
			assert.Equal(t, int64(2), info.Multiplier)
		})
	}
}

func TestPayoutForOddEvenPartition(t *testing.T) {
	odd, err := PayoutFor(Direction{Kind: DirectionOdd})
	require.NoError(t, err)
	even, err := PayoutFor(Direction{Kind: DirectionEven})
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, n := range odd.Numbers {
		assert.Equal(t, uint32(1), n%2)
		seen[n] = true
	}
	for _, n := range even.Numbers {
		assert.Equal(t, uint32(0), n%2)
		assert.False(t, seen[n])
		seen[n] = true
	}
	// Together they cover exactly 1..36.
	assert.Len(t, seen, 36)
	for n := uint32(1); n <= 36; n++ {
		assert.True(t, seen[n], "number %d missing from odd/even partition", n)
	}
}

func TestPayoutForRedBlackPartition(t *testing.T) {
	red, err := PayoutFor(Direction{Kind: DirectionRed})
	require.NoError(t, err)
	black, err := PayoutFor(Direction{Kind: DirectionBlack})
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, n := range append(red.Numbers, black.Numbers...) {
		assert.False(t, seen[n], "number %d on both colors", n)
		seen[n] = true
	}
	assert.Len(t, seen, 36)
}

func TestPayoutForRows(t *testing.T) {
	covered := make(map[uint32]bool)
	for id := uint32(1); id <= 3; id++ {
		info, err := PayoutFor(Direction{Kind: DirectionRow, ID: id})
		require.NoError(t, err)
		assert.Len(t, info.Numbers, 12)
		assert.Equal(t, int64(3), info.Multiplier)
		for _, n := range info.Numbers {
			assert.Equal(t, id%3, n%3)
			covered[n] = true
		}
	}
	assert.Len(t, covered, 36)
}

func TestPayoutForColumns(t *testing.T) {
	for id := uint32(1); id <= 12; id++ {
		info, err := PayoutFor(Direction{Kind: DirectionColumn, ID: id})
		require.NoError(t, err)
		start := (id-1)*3 + 1
		assert.Equal(t, []uint32{start, start + 1, start + 2}, info.Numbers)
		assert.Equal(t, int64(12), info.Multiplier)
	}
}

func TestPayoutForThirds(t *testing.T) {
	first, err := PayoutFor(Direction{Kind: DirectionFirstOfThird})
	require.NoError(t, err)
	second, err := PayoutFor(Direction{Kind: DirectionSecondOfThird})
	require.NoError(t, err)
	third, err := PayoutFor(Direction{Kind: DirectionThirdOfThird})
	require.NoError(t, err)

	assert.Equal(t, uint32(1), first.Numbers[0])
	assert.Equal(t, uint32(12), first.Numbers[len(first.Numbers)-1])
	assert.Equal(t, uint32(13), second.Numbers[0])
	assert.Equal(t, uint32(24), second.Numbers[len(second.Numbers)-1])
	assert.Equal(t, uint32(25), third.Numbers[0])
	assert.Equal(t, uint32(36), third.Numbers[len(third.Numbers)-1])
	for _, info := range []PayoutInfo{first, second, third} {
		assert.Len(t, info.Numbers, 12)
		assert.Equal(t, int64(3), info.Multiplier)
	}
}

func TestPayoutForHouseNumbers(t *testing.T) {
	zero, err := PayoutFor(Direction{Kind: DirectionZero})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, zero.Numbers)
	assert.Equal(t, int64(36), zero.Multiplier)

	dz, err := PayoutFor(Direction{Kind: DirectionDoubleZero})
	require.NoError(t, err)
	assert.Equal(t, []uint32{DoubleZeroNumber}, dz.Numbers)
	assert.Equal(t, int64(36), dz.Multiplier)
}

func TestPayoutForSingles(t *testing.T) {
	for id := uint32(1); id <= 36; id++ {
		info, err := PayoutFor(Direction{Kind: DirectionSingle, ID: id})
		require.NoError(t, err)
		assert.Equal(t, []uint32{id}, info.Numbers)
		assert.Equal(t, int64(36), info.Multiplier)
	}
}

func TestPayoutForInvalidSelections(t *testing.T) {
	invalid := []Direction{
		{Kind: DirectionRow, ID: 0},
		{Kind: DirectionRow, ID: 4},
		{Kind: DirectionColumn, ID: 0},
		{Kind: DirectionColumn, ID: 13},
		{Kind: DirectionSingle, ID: 0},
		{Kind: DirectionSingle, ID: 37},
		{Kind: DirectionOdd, ID: 2},
		{Kind: "corner"},
	}

	for _, dir := range invalid {
		_, err := PayoutFor(dir)
		var selErr *InvalidSelectionError
		assert.ErrorAs(t, err, &selErr, "direction %s must be rejected", dir)
	}
}

// Every direction's covered set must be non-empty and stay on the wheel.
func TestPayoutForCoverageBounds(t *testing.T) {
	all := []Direction{
		{Kind: DirectionOdd}, {Kind: DirectionEven},
		{Kind: DirectionFirstHalf}, {Kind: DirectionSecondHalf},
		{Kind: DirectionRed}, {Kind: DirectionBlack},
		{Kind: DirectionFirstOfThird}, {Kind: DirectionSecondOfThird}, {Kind: DirectionThirdOfThird},
		{Kind: DirectionZero}, {Kind: DirectionDoubleZero},
	}
	for id := uint32(1); id <= 3; id++ {
		all = append(all, Direction{Kind: DirectionRow, ID: id})
	}
	for id := uint32(1); id <= 12; id++ {
		all = append(all, Direction{Kind: DirectionColumn, ID: id})
	}
	for id := uint32(1); id <= 36; id++ {
		all = append(all, Direction{Kind: DirectionSingle, ID: id})
	}

	for _, dir := range all {
		info, err := PayoutFor(dir)
		require.NoError(t, err)
		require.NotEmpty(t, info.Numbers, "direction %s", dir)
		for _, n := range info.Numbers {
			assert.Less(t, n, uint32(WheelSize), "direction %s", dir)
		}
	}
}
