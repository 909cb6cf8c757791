package layout

// Placed is a visible word positioned on a line.
type Placed struct {
	Text string
	X    float64
	Bold bool
}

// Justify positions the words of line between left and left+targetWidth. The
// slack is spread evenly over the line's space words so the last word ends on the
// right edge; the last line of a paragraph, and lines without spaces, keep their
// natural spacing.
func Justify(line Line, left, targetWidth float64, last bool, measure MeasureFunc) []Placed {
	total := line.Width(measure)
	spaces := line.Spaces()

	var increment float64
	if !last && spaces > 0 {
		increment = (targetWidth - total) / float64(spaces)
	}

	placed := make([]Placed, 0, len(line.Words)-spaces)
	x := left
	for _, w := range line.Words {
		ww := wordWidth(w, measure)
		if w.Space {
			x += ww + increment
			continue
		}
		placed = append(placed, Placed{Text: w.Text, X: x, Bold: w.Bold})
		x += ww
	}
	return placed
}
