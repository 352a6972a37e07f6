package models

// The wheel has 38 pockets: 0, 1..36 and 37, which stands in for the second
// house number (double zero).
const (
	WheelSize        = 38
	DoubleZeroNumber = 37
)

// PayoutInfo is the set of wheel numbers a direction pays out on and the
// factor applied to the staked amount when one of them is drawn.
type PayoutInfo struct {
	Numbers    []uint32 `json:"numbers"`
	Multiplier int64    `json:"multiplier"`
}

// Covers reports whether the winning number n is in the covered set.
func (p PayoutInfo) Covers(n uint32) bool {
	for _, point := range p.Numbers {
		if point == n {
			return true
		}
	}
	return false
}

// PayoutFor maps a direction to its covered numbers and multiplier. This is
// fixed game data; the admission path and the settlement path both call it and
// must agree exactly. The only failure is an out-of-range id on the
// parameterized kinds.
func PayoutFor(d Direction) (PayoutInfo, error) {
	if err := d.Validate(); err != nil {
		return PayoutInfo{}, err
	}

	switch d.Kind {
	case DirectionOdd:
		return PayoutInfo{
			Numbers:    []uint32{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31, 33, 35},
			Multiplier: 2,
		}, nil
	case DirectionEven:
		return PayoutInfo{
			Numbers:    []uint32{2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36},
			Multiplier: 2,
		}, nil
	case DirectionFirstHalf:
		return PayoutInfo{
			Numbers:    []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18},
			Multiplier: 2,
		}, nil
	case DirectionSecondHalf:
		return PayoutInfo{
			Numbers:    []uint32{19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36},
			Multiplier: 2,
		}, nil
	case DirectionRed:
		return PayoutInfo{
			Numbers:    []uint32{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36},
			Multiplier: 2,
		}, nil
	case DirectionBlack:
		return PayoutInfo{
			Numbers:    []uint32{2, 4, 6, 8, 10, 11, 13, 15, 17, 20, 22, 24, 26, 28, 29, 31, 33, 35},
			Multiplier: 2,
		}, nil
	case DirectionRow:
		// The 12 numbers congruent to the row id mod 3, starting at the id.
		numbers := make([]uint32, 0, 12)
		for i := uint32(0); i < 12; i++ {
			numbers = append(numbers, d.ID+i*3)
		}
		return PayoutInfo{Numbers: numbers, Multiplier: 3}, nil
	case DirectionColumn:
		start := (d.ID-1)*3 + 1
		return PayoutInfo{Numbers: []uint32{start, start + 1, start + 2}, Multiplier: 12}, nil
	case DirectionFirstOfThird:
		return PayoutInfo{
			Numbers:    []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			Multiplier: 3,
		}, nil
	case DirectionSecondOfThird:
		return PayoutInfo{
			Numbers:    []uint32{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24},
			Multiplier: 3,
		}, nil
	case DirectionThirdOfThird:
		return PayoutInfo{
			Numbers:    []uint32{25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36},
			Multiplier: 3,
		}, nil
	case DirectionSingle:
		return PayoutInfo{Numbers: []uint32{d.ID}, Multiplier: 36}, nil
	case DirectionZero:
		return PayoutInfo{Numbers: []uint32{0}, Multiplier: 36}, nil
	case DirectionDoubleZero:
		return PayoutInfo{Numbers: []uint32{DoubleZeroNumber}, Multiplier: 36}, nil
	}

	// Validate already rejected unknown kinds.
	return PayoutInfo{}, &InvalidSelectionError{Direction: d, Reason: "unknown selection kind"}
}
