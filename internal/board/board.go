// internal/board/board.go
//
// State transitions for the bingo board.
// Responsibilities:
//   - Optimistic word writes: the cell takes the new text immediately and
//     drops any verdict state; the outgoing word is stashed in PreviousWord
//     when it was valid, so a deadline can restore it.
//   - Single-focus invariant: focusing a cell unfocuses every other cell.
//   - Verdict application with staleness protection: a verdict carries the
//     word it was computed for and is discarded if the cell has moved on.
//   - Duplicate detection (trimmed, case-insensitive) across the grid.
//   - Derived counts and completion, and the deadline fallback (Expire).
//
// All methods are bounds-checked and never panic; out-of-range coordinates
// report false and change nothing.
package board

import (
	"strings"

	"github.com/kipackjeong/wordbingo-server/internal/validate"
)

// New returns an empty board.
func New() *Board {
	return &Board{}
}

func inRange(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Cell returns a pointer into the grid for in-place inspection.
func (b *Board) Cell(row, col int) (*Cell, bool) {
	if !inRange(row, col) {
		return nil, false
	}
	return &b.cells[row][col], true
}

// Snapshot copies the whole grid.
func (b *Board) Snapshot() [Size][Size]Cell {
	return b.cells
}

// SetWord writes word into the cell, trimmed. The write is optimistic: any
// previous verdict (valid flag, error, definition) is dropped and an
// in-flight lookup for the old word becomes stale. If the outgoing word was
// valid it is stashed in PreviousWord. An empty word resets the cell
// silently; no error state is produced.
func (b *Board) SetWord(row, col int, word string) bool {
	c, ok := b.Cell(row, col)
	if !ok {
		return false
	}

	if c.Valid && c.Word != "" {
		c.PreviousWord = c.Word
	}

	c.Word = strings.TrimSpace(word)
	c.Valid = false
	c.Validating = false
	c.Error = ""
	c.ErrorCode = ""
	c.Definition = ""
	return true
}

// Focus marks the cell as being edited. At most one cell is focused at a
// time; any other focused cell is blurred first.
func (b *Board) Focus(row, col int) bool {
	if !inRange(row, col) {
		return false
	}
	for r := 0; r < Size; r++ {
		for cc := 0; cc < Size; cc++ {
			b.cells[r][cc].Focused = false
		}
	}
	b.cells[row][col].Focused = true
	return true
}

// Blur clears focus from the cell. Blurring an unfocused cell is a no-op.
func (b *Board) Blur(row, col int) bool {
	c, ok := b.Cell(row, col)
	if !ok {
		return false
	}
	c.Focused = false
	return true
}

// SetValidating flips the in-flight-lookup flag.
func (b *Board) SetValidating(row, col int, on bool) bool {
	c, ok := b.Cell(row, col)
	if !ok {
		return false
	}
	c.Validating = on
	return true
}

// SetError puts the cell into an error state without touching its word.
// Used for the inline duplicate warning before validation even fires.
func (b *Board) SetError(row, col int, code, message string) bool {
	c, ok := b.Cell(row, col)
	if !ok {
		return false
	}
	c.Valid = false
	c.ErrorCode = code
	c.Error = message
	return true
}

// ApplyVerdict lands a validation verdict on the cell. The verdict is
// discarded (returns false) when its word no longer matches the cell's
// current word: the user kept typing and a newer validation pass owns the
// cell now. On a valid verdict the PreviousWord stash is cleared; the new
// word is the known-good one.
func (b *Board) ApplyVerdict(row, col int, v validate.Verdict) bool {
	c, ok := b.Cell(row, col)
	if !ok {
		return false
	}
	if v.Word != c.Word {
		return false
	}

	c.Validating = false
	c.Valid = v.Valid
	c.Error = v.Error
	c.ErrorCode = v.Code
	c.Definition = v.Definition
	if v.Valid {
		c.PreviousWord = ""
	}
	return true
}

// IsDuplicate reports whether word already appears in any cell other than
// (row, col). Comparison is on trimmed, case-folded text; blanks never
// count.
func (b *Board) IsDuplicate(word string, row, col int) bool {
	w := normalize(word)
	if w == "" {
		return false
	}
	for r := 0; r < Size; r++ {
		for cc := 0; cc < Size; cc++ {
			if r == row && cc == col {
				continue
			}
			if normalize(b.cells[r][cc].Word) == w {
				return true
			}
		}
	}
	return false
}

// FilledCount counts cells with a non-blank word.
func (b *Board) FilledCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if strings.TrimSpace(b.cells[r][c].Word) != "" {
				n++
			}
		}
	}
	return n
}

// ValidCount counts cells holding a valid word.
func (b *Board) ValidCount() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c].Valid {
				n++
			}
		}
	}
	return n
}

// HasDuplicates reports whether any word appears in more than one cell.
func (b *Board) HasDuplicates() bool {
	seen := make(map[string]struct{}, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			w := normalize(b.cells[r][c].Word)
			if w == "" {
				continue
			}
			if _, dup := seen[w]; dup {
				return true
			}
			seen[w] = struct{}{}
		}
	}
	return false
}

// Complete reports whether the board is finished: every cell valid and no
// word used twice.
func (b *Board) Complete() bool {
	return b.ValidCount() == Size*Size && !b.HasDuplicates()
}

// Expire applies the deadline fallback. Every cell caught mid-edit or
// mid-validation settles: cells with a stashed known-good word revert to it
// (valid again, stash consumed, definition not restored), the rest just
// lose their transient flags. Returns the keys of reverted cells. Calling
// Expire on an already-settled board changes nothing.
func (b *Board) Expire() []string {
	reverted := []string{} // non-nil so it always encodes as a JSON array
	for r := 0; r < Size; r++ {
		for cc := 0; cc < Size; cc++ {
			c := &b.cells[r][cc]
			if !c.Focused && !c.Validating {
				continue
			}
			if c.PreviousWord != "" {
				c.Word = c.PreviousWord
				c.PreviousWord = ""
				c.Valid = true
				c.Error = ""
				c.ErrorCode = ""
				c.Definition = ""
				reverted = append(reverted, CellKey(r, cc))
			}
			c.Focused = false
			c.Validating = false
		}
	}
	return reverted
}
