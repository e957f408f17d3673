package countdown

import "fmt"

// Position is the character cell within a unit.
type Position int

const (
	Tens Position = iota
	Ones
)

// Positions lists both cells in display order.
var Positions = [...]Position{Tens, Ones}

func (p Position) String() string {
	if p == Tens {
		return "tens"
	}
	return "ones"
}

// Slot identifies one of the six displayed character cells.
type Slot struct {
	Unit Unit
	Pos  Position
}

func (s Slot) String() string {
	return s.Unit.String() + "/" + s.Pos.String()
}

// Digits is the zero-padded pair shown for one unit.
type Digits [2]byte

// DigitState holds the displayed digits for every unit.
type DigitState [len(Units)]Digits

// At returns the character shown in slot s.
func (s DigitState) At(slot Slot) byte {
	return s[slot.Unit][slot.Pos]
}

// String renders the state as DD:HH:MM.
func (s DigitState) String() string {
	return fmt.Sprintf("%c%c:%c%c:%c%c",
		s[Day][Tens], s[Day][Ones],
		s[Hour][Tens], s[Hour][Ones],
		s[Minute][Tens], s[Minute][Ones])
}

// maxDisplay is the largest count two cells can show. Day counts above it
// saturate; the summary still carries the exact value.
const maxDisplay = 99

// Render zero-pads every unit of d into two digit characters.
func Render(d Delta) DigitState {
	var s DigitState
	for _, u := range Units {
		s[u] = pad(d.Count(u))
	}
	return s
}

func pad(n int) Digits {
	if n < 0 {
		n = 0
	}
	if n > maxDisplay {
		n = maxDisplay
	}
	return Digits{byte('0' + n/10), byte('0' + n%10)}
}

// Change reports that slot must now show Char.
type Change struct {
	Slot Slot
	Char byte
}

func (c Change) String() string {
	return fmt.Sprintf("%s=%c", c.Slot, c.Char)
}

// Diff returns one Change per slot whose character differs between previous
// and next, ordered by unit and then position. Unchanged slots emit nothing.
func Diff(previous, next DigitState) []Change {
	var changes []Change
	for _, u := range Units {
		for _, p := range Positions {
			if previous[u][p] != next[u][p] {
				changes = append(changes, Change{Slot: Slot{Unit: u, Pos: p}, Char: next[u][p]})
			}
		}
	}
	return changes
}
