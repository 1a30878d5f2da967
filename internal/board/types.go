// internal/board/types.go
//
// Core type definitions for the bingo board.
// Defines:
//   - Cell: one grid cell with its word and validation lifecycle state.
//   - Board: the 5x5 grid of cells.
//   - Style constants: the presentation class derived from cell state.

package board

import (
	"encoding/json"
	"fmt"
)

// Size is the board edge length; the grid is always Size x Size.
const Size = 5

// Style classes, in precedence order. A focused cell shows as focused even
// while a lookup is running; a validating cell shows as validating even if
// its previous verdict was valid.
const (
	StyleFocused    = "focused"
	StyleValidating = "validating"
	StyleValid      = "valid"
	StyleInvalid    = "invalid"
	StyleDefault    = "default"
)

// Cell holds the state of a single board cell.
type Cell struct {
	Word         string `json:"word"`                      // current text, trimmed ("" = blank)
	Valid        bool   `json:"isValid"`                   // word passed rule + dictionary
	Focused      bool   `json:"isFocused"`                 // cell is being edited
	Validating   bool   `json:"isValidating"`              // a dictionary lookup is in flight
	Error        string `json:"validationError,omitempty"` // user-facing message
	ErrorCode    string `json:"errorCode,omitempty"`       // machine-readable verdict code
	Definition   string `json:"definition,omitempty"`      // dictionary definition when valid
	PreviousWord string `json:"previousWord,omitempty"`    // last known-good word, for deadline revert
}

// Board is the 5x5 grid. It does no locking of its own: the owning round
// serializes all access.
type Board struct {
	cells [Size][Size]Cell
}

// CellKey renders the canonical "row-col" key used for debounce timers and
// event payloads.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

// StyleClass derives the presentation class from cell state, highest
// precedence first.
func (c *Cell) StyleClass() string {
	switch {
	case c.Focused:
		return StyleFocused
	case c.Validating:
		return StyleValidating
	case c.Valid:
		return StyleValid
	case c.Error != "":
		return StyleInvalid
	default:
		return StyleDefault
	}
}

// MarshalJSON includes the derived style so clients never compute
// precedence themselves.
func (c Cell) MarshalJSON() ([]byte, error) {
	type alias Cell
	return json.Marshal(struct {
		alias
		Style string `json:"style"`
	}{alias(c), c.StyleClass()})
}
