package models

import (
	"encoding/json"
	"fmt"
)

// DirectionKind enumerates the closed set of wager selections on the wheel.
type DirectionKind string

const (
	DirectionOdd           DirectionKind = "odd"
	DirectionEven          DirectionKind = "even"
	DirectionFirstHalf     DirectionKind = "first_half"
	DirectionSecondHalf    DirectionKind = "second_half"
	DirectionRed           DirectionKind = "red"
	DirectionBlack         DirectionKind = "black"
	DirectionRow           DirectionKind = "row"
	DirectionColumn        DirectionKind = "column"
	DirectionFirstOfThird  DirectionKind = "first_of_third"
	DirectionSecondOfThird DirectionKind = "second_of_third"
	DirectionThirdOfThird  DirectionKind = "third_of_third"
	DirectionSingle        DirectionKind = "single"
	DirectionZero          DirectionKind = "zero"
	DirectionDoubleZero    DirectionKind = "double_zero"
)

// Direction is one selection on the wheel. Kind is always set; ID is only
// meaningful for the parameterized kinds (row 1-3, column 1-12, single 1-36)
// and must be zero otherwise.
type Direction struct {
	Kind DirectionKind `json:"kind"`
	ID   uint32        `json:"id,omitempty"`
}

// Parameterized reports whether the direction kind carries a selection id.
func (d Direction) Parameterized() bool {
	switch d.Kind {
	case DirectionRow, DirectionColumn, DirectionSingle:
		return true
	}
	return false
}

// Validate checks that the kind is known and any id is in range.
func (d Direction) Validate() error {
	switch d.Kind {
	case DirectionOdd, DirectionEven, DirectionFirstHalf, DirectionSecondHalf,
		DirectionRed, DirectionBlack, DirectionFirstOfThird, DirectionSecondOfThird,
		DirectionThirdOfThird, DirectionZero, DirectionDoubleZero:
		if d.ID != 0 {
			return &InvalidSelectionError{Direction: d, Reason: "selection does not take an id"}
		}
		return nil
	case DirectionRow:
		if d.ID < 1 || d.ID > 3 {
			return &InvalidSelectionError{Direction: d, Reason: "row id must be 1, 2 or 3"}
		}
		return nil
	case DirectionColumn:
		if d.ID < 1 || d.ID > 12 {
			return &InvalidSelectionError{Direction: d, Reason: "column id must be in 1..12"}
		}
		return nil
	case DirectionSingle:
		if d.ID < 1 || d.ID > 36 {
			return &InvalidSelectionError{Direction: d, Reason: "single id must be in 1..36"}
		}
		return nil
	}
	return &InvalidSelectionError{Direction: d, Reason: "unknown selection kind"}
}

func (d Direction) String() string {
	if d.Parameterized() {
		return fmt.Sprintf("%s:%d", d.Kind, d.ID)
	}
	return string(d.Kind)
}

// InvalidSelectionError reports a malformed direction.
type InvalidSelectionError struct {
	Direction Direction
	Reason    string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %s: %s", e.Direction, e.Reason)
}

// UnmarshalJSON rejects unknown kinds at decode time so malformed requests
// fail before they reach the admission path.
func (d *Direction) UnmarshalJSON(data []byte) error {
	type alias Direction
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = Direction(a)
	return d.Validate()
}
