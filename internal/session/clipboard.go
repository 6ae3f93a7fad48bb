package session

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system (install xclip, xsel or wl-clipboard)")

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// clipboardWriteAll can be swapped in tests.
var clipboardWriteAll = clipboard.WriteAll

// SystemClipboard writes to the host clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboardWriteAll(text)
}

// discardClipboard accepts text and drops it. Used when the copy happens on
// another machine, such as in the browser.
type discardClipboard struct{}

func (discardClipboard) WriteAll(string) error { return nil }
