package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is a piece of paragraph text in one style.
type Segment struct {
	Text string
	Bold bool
}

// Run is a logical paragraph made of styled segments.
type Run []Segment

// Plain returns a run holding a single regular segment.
func Plain(text string) Run {
	return Run{{Text: text}}
}

// Text returns the concatenated text of all segments.
func (r Run) Text() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Word is the smallest layout unit: a visible token or a whitespace token.
type Word struct {
	Text  string
	Bold  bool
	Space bool
}

// Tokenize splits every segment of the run at whitespace boundaries. Whitespace
// runs become Space words so the original spacing can be reconstructed; they carry
// no style and are measured in the regular face.
func Tokenize(run Run) []Word {
	var words []Word
	for _, seg := range run {
		words = appendSegmentWords(words, seg)
	}
	return words
}

func appendSegmentWords(words []Word, seg Segment) []Word {
	text := seg.Text
	for len(text) > 0 {
		r, _ := utf8.DecodeRuneInString(text)
		space := unicode.IsSpace(r)
		end := len(text)
		for i, c := range text {
			if unicode.IsSpace(c) != space {
				end = i
				break
			}
		}
		if space {
			words = append(words, Word{Text: text[:end], Space: true})
		} else {
			words = append(words, Word{Text: text[:end], Bold: seg.Bold})
		}
		text = text[end:]
	}
	return words
}

// MeasureFunc returns the rendered width of text in the regular or bold face.
type MeasureFunc func(text string, bold bool) float64

// Metrics measures text in a given font.
type Metrics interface {
	TextWidth(text string, f Font) float64
}

// MeasureWith binds m to a base font, switching only the bold flag per call.
func MeasureWith(m Metrics, f Font) MeasureFunc {
	return func(text string, bold bool) float64 {
		return m.TextWidth(text, f.WithBold(bold))
	}
}

func wordWidth(w Word, measure MeasureFunc) float64 {
	if w.Space {
		return measure(w.Text, false)
	}
	return measure(w.Text, w.Bold)
}
