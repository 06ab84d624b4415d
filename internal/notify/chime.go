package notify

import (
	"fmt"
	"os"
)

// BellChime rings the terminal bell of the process. Good enough for a
// dashboard running on the till; playback failure is the caller's to
// swallow.
type BellChime struct{}

func (BellChime) Play() error {
	_, err := fmt.Fprint(os.Stdout, "\a")
	return err
}
