package shell

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrymomot/spakit/core/view"
)

// screen is a MountPoint that prints each mounted view.
type screen struct {
	mu       sync.Mutex
	out      io.Writer
	children []string
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

func (s *screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = nil
}

func (s *screen) Append(ctx context.Context, v *view.Handle) error {
	var buf bytes.Buffer
	if err := v.Render(ctx, &buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.children = append(s.children, v.Name())
	_, err := fmt.Fprintf(s.out, "\n%s\n", strings.TrimRight(buf.String(), "\n"))
	return err
}

func (s *screen) print(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

// terminal reads input lines for both the command loop and dialogs.
type terminal struct {
	screen *screen
	lines  chan string
	done   chan struct{}
}

func newTerminal(in io.Reader, s *screen) *terminal {
	t := &terminal{
		screen: s,
		lines:  make(chan string),
		done:   make(chan struct{}),
	}
	go t.pump(in)
	return t
}

func (t *terminal) pump(in io.Reader) {
	defer close(t.lines)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case t.lines <- sc.Text():
		case <-t.done:
			return
		}
	}
}

// readLine returns false once input is exhausted or ctx is done.
func (t *terminal) readLine(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-t.lines:
		return strings.TrimSpace(line), ok
	case <-ctx.Done():
		return "", false
	}
}

func (t *terminal) close() {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
}

// Alert prints msg.
func (t *terminal) Alert(msg string) {
	t.screen.print("! %s", msg)
}

// Confirm asks a yes/no question. Anything but y or yes is no.
func (t *terminal) Confirm(msg string) bool {
	t.screen.print("? %s [y/N]", msg)
	line, ok := t.readLine(context.Background())
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Prompt asks for a value. An empty answer takes def; end of input dismisses.
func (t *terminal) Prompt(msg, def string) (string, bool) {
	if def != "" {
		t.screen.print("? %s [%s]", msg, def)
	} else {
		t.screen.print("? %s", msg)
	}
	line, ok := t.readLine(context.Background())
	if !ok {
		return "", false
	}
	if line == "" {
		return def, true
	}
	return line, true
}
