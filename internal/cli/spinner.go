package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depchecker/pkg/observability"
)

// Spinner is a progress indicator for the scan phase. It registers itself
// as the scan hooks so the message follows the running scanner.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	frames  []string

	mu      sync.Mutex
	message string
	width   int
}

// startSpinner starts a spinner on stderr. It returns nil when stderr is
// not a terminal or debug logging is on, since log lines would tear the
// animation apart.
func startSpinner(ctx context.Context, logger *log.Logger) *Spinner {
	if !isTerminal(os.Stderr) || logger.GetLevel() <= log.DebugLevel {
		return nil
	}
	s := newSpinner(ctx, os.Stderr, "Discovering sources")
	observability.SetScanHooks(s)
	s.Start()
	return s
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(s.frames[i%len(s.frames)])
			}
		}
	}()
}

// Stop ends the animation, clears the line and unregisters the hooks.
// Calling Stop on a nil Spinner is a no-op.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	<-s.stopped
	s.clearLine()
	observability.SetScanHooks(observability.NoopScanHooks{})
}

// SetMessage replaces the text shown next to the animation.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	pad := max(0, s.width-len(s.message))
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = len(s.message)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+4))
}

// OnScanStart implements observability.ScanHooks.
func (s *Spinner) OnScanStart(_ context.Context, scanner string, units int) {
	s.SetMessage(fmt.Sprintf("Scanning %d %s sources", units, scanner))
}

func (s *Spinner) OnScanComplete(context.Context, string, int, int, time.Duration, error) {}

func (s *Spinner) OnFileError(context.Context, string, string, error) {}
