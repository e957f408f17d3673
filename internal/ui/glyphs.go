package ui

import "strings"

const (
	glyphRows  = 6
	glyphWidth = 5
	halfRows   = glyphRows / 2
	cardWidth  = glyphWidth + 2
)

type glyph [glyphRows]string

var digitGlyphs = map[byte]glyph{
	'0': {" ███ ", "█   █", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "  █  ", " ███ "},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", " █   ", "█████"},
	'3': {"████ ", "    █", " ███ ", "    █", "    █", "████ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", "  █  ", "  █  "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", "    █", " ███ "},
}

var blankGlyph = func() glyph {
	var g glyph
	for i := range g {
		g[i] = strings.Repeat(" ", glyphWidth)
	}
	return g
}()

// glyphFor returns the block glyph for ch. Anything other than a digit
// renders blank.
func glyphFor(ch byte) glyph {
	if g, ok := digitGlyphs[ch]; ok {
		return g
	}
	return blankGlyph
}
