package layout

import "strings"

// Line is a run of words that fits the wrap width. Words never begins or ends with
// a space word; whitespace removed from the line edges is kept in Lead (only on the
// first line of a run) and Trailing so the source text stays reconstructible.
type Line struct {
	Lead     []Word
	Words    []Word
	Trailing []Word
}

// Text returns the visible text of the line with its inner spacing.
func (l Line) Text() string {
	var b strings.Builder
	for _, w := range l.Words {
		b.WriteString(w.Text)
	}
	return b.String()
}

// Source returns every word the line consumed, whitespace included, in order.
func (l Line) Source() []Word {
	out := make([]Word, 0, len(l.Lead)+len(l.Words)+len(l.Trailing))
	out = append(out, l.Lead...)
	out = append(out, l.Words...)
	return append(out, l.Trailing...)
}

// Width returns the summed width of the line's words.
func (l Line) Width(measure MeasureFunc) float64 {
	var total float64
	for _, w := range l.Words {
		total += wordWidth(w, measure)
	}
	return total
}

// Spaces returns the number of space words in the line.
func (l Line) Spaces() int {
	n := 0
	for _, w := range l.Words {
		if w.Space {
			n++
		}
	}
	return n
}

// Wrap breaks run into lines no wider than maxWidth. Words are accumulated
// greedily; a word that does not fit closes the current line and opens the next,
// unless it is a space, which is dropped from the next line. A single word wider
// than maxWidth is kept whole on its own line.
func Wrap(run Run, maxWidth float64, measure MeasureFunc) []Line {
	var (
		lines   []Line
		lead    []Word
		current []Word
		width   float64
	)
	for _, w := range Tokenize(run) {
		if w.Space && len(current) == 0 {
			// Whitespace never opens a line.
			if len(lines) == 0 {
				lead = append(lead, w)
			} else {
				last := &lines[len(lines)-1]
				last.Trailing = append(last.Trailing, w)
			}
			continue
		}
		ww := wordWidth(w, measure)
		if width+ww > maxWidth && len(current) > 0 {
			line := closeLine(current)
			current, width = nil, 0
			if w.Space {
				line.Trailing = append(line.Trailing, w)
				lines = append(lines, line)
				continue
			}
			lines = append(lines, line)
		}
		current = append(current, w)
		width += ww
	}
	if len(current) > 0 {
		lines = append(lines, closeLine(current))
	}
	if len(lines) == 0 && len(lead) > 0 {
		// Whitespace-only run: one empty line keeps the text.
		lines = append(lines, Line{})
	}
	if len(lead) > 0 {
		lines[0].Lead = lead
	}
	return lines
}

// closeLine moves trailing space words of words into the line's Trailing.
func closeLine(words []Word) Line {
	end := len(words)
	for end > 0 && words[end-1].Space {
		end--
	}
	return Line{Words: words[:end:end], Trailing: append([]Word(nil), words[end:]...)}
}
