package docgen

import (
	"time"

	"go.uber.org/zap"

	"github.com/lvillar/docgen/render"
)

// Option is a functional option for configuring a Generator via New.
type Option func(*config)

type config struct {
	log        *zap.Logger
	now        func() time.Time
	fontDir    string
	unicode    *render.UnicodeFont
	letterhead string
	watermark  string
	recorder   Recorder
	compress   bool
	creator    string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the time source used for letter dates and submission
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFontDir sets the directory where UTF-8 font files are located.
func WithFontDir(dir string) Option {
	return func(c *config) {
		c.fontDir = dir
	}
}

// WithUnicodeFont replaces the core Helvetica and Times fonts with a UTF-8 TTF
// family, which lifts the cp1252 restriction on text. Only regular is required.
func WithUnicodeFont(family, regular, bold, italic, boldItalic string) Option {
	return func(c *config) {
		if family == "" || regular == "" {
			return
		}
		c.unicode = &render.UnicodeFont{
			Family: family, Regular: regular, Bold: bold, Italic: italic, BoldItalic: boldItalic,
		}
	}
}

// WithLetterhead draws page 1 of the PDF at path beneath every generated page.
func WithLetterhead(path string) Option {
	return func(c *config) {
		c.letterhead = path
	}
}

// WithPreviewWatermark stamps text diagonally across preview pages.
func WithPreviewWatermark(text string) Option {
	return func(c *config) {
		c.watermark = text
	}
}

// WithRecorder sets where submissions are recorded before a final document is
// generated. Without one, nothing is recorded.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

// WithCompression toggles PDF stream compression (default: on).
func WithCompression(on bool) Option {
	return func(c *config) {
		c.compress = on
	}
}

// WithCreator sets the PDF creator metadata (default: "docgen").
func WithCreator(creator string) Option {
	return func(c *config) {
		c.creator = creator
	}
}
