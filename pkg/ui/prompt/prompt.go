// Package prompt reads single-keystroke confirmation answers from a
// terminal. It implements types.DecisionSource so the sequencer stays
// ignorant of the input transport; tests substitute a scripted source.
package prompt

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/arthur-debert/fnr/pkg/ui/display"
)

const (
	keyEnter = '\r'
	keyLF    = '\n'
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

// Keystroke prompts on a terminal and reads one raw keystroke per
// decision: y/Enter = yes, n = no, a = all, q/Esc/Ctrl-C = quit.
type Keystroke struct {
	in       *os.File
	out      io.Writer
	renderer *display.Renderer
}

// New creates a Keystroke source reading from in (normally os.Stdin)
// and writing prompts through the given renderer's output.
func New(in *os.File, out io.Writer, renderer *display.Renderer) *Keystroke {
	return &Keystroke{in: in, out: out, renderer: renderer}
}

// Confirm renders the before/after pair for m and blocks until the user
// answers with a recognized key.
func (k *Keystroke) Confirm(m types.Match) (types.Decision, error) {
	logger := logging.GetLogger("prompt")

	k.renderer.BeforeAfter(m)
	fmt.Fprint(k.out, "Replace filename/dirname? [Y]es/[n]o/[a]ll/[q]uit: ")

	oldState, err := term.MakeRaw(int(k.in.Fd()))
	if err != nil {
		return types.DecisionQuit, errors.Wrap(err, errors.ErrInternal,
			"failed to enter raw terminal mode")
	}
	defer func() {
		_ = term.Restore(int(k.in.Fd()), oldState)
		fmt.Fprintln(k.out)
	}()

	buf := make([]byte, 1)
	for {
		if _, err := k.in.Read(buf); err != nil {
			return types.DecisionQuit, errors.Wrap(err, errors.ErrInternal,
				"failed to read keystroke")
		}

		switch buf[0] {
		case 'y', 'Y', keyEnter, keyLF:
			fmt.Fprint(k.out, "\ry")
			return types.DecisionYes, nil
		case 'n', 'N':
			fmt.Fprint(k.out, "\rn")
			return types.DecisionNo, nil
		case 'a', 'A':
			fmt.Fprint(k.out, "\ra")
			return types.DecisionAll, nil
		case 'q', 'Q', keyEsc:
			fmt.Fprint(k.out, "\rq")
			return types.DecisionQuit, nil
		case keyCtrlC:
			fmt.Fprint(k.out, "\r^C")
			return types.DecisionQuit, nil
		default:
			logger.Trace().Uint8("key", buf[0]).Msg("Ignoring keystroke")
		}
	}
}
