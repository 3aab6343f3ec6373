package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milestone-dev/milestone/pkg/pipeline"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// renderSpinner animates on w while a render is in flight. It stops on
// stop or when ctx is done, whichever comes first, and clears its line
// either way.
type renderSpinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started atomic.Bool
	once    sync.Once
	mu      sync.Mutex
}

// renderMessage is the line shown while kind renders.
func renderMessage(kind pipeline.Kind, title string) string {
	switch kind {
	case pipeline.KindCard:
		return fmt.Sprintf("Laying out card for %s...", title)
	case pipeline.KindChips:
		return fmt.Sprintf("Measuring tech chips for %s...", title)
	case pipeline.KindTimeline:
		return "Arranging timeline..."
	case pipeline.KindGraph:
		return "Running graphviz layout..."
	}
	return fmt.Sprintf("Rendering %s...", kind)
}

func newRenderSpinner(ctx context.Context, w io.Writer, req pipeline.Request) *renderSpinner {
	title := "project"
	if req.Project != nil && req.Project.Title != "" {
		title = req.Project.Title
	}
	ctx, cancel := context.WithCancel(ctx)
	return &renderSpinner{
		w:       w,
		message: renderMessage(req.Kind, title),
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

func (s *renderSpinner) start() {
	s.started.Store(true)
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.draw(spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
			}
		}
	}()
}

// stop halts the animation and waits for the line to be cleared. Calling
// it more than once is fine.
func (s *renderSpinner) stop() {
	s.once.Do(func() {
		s.cancel()
		if s.started.Load() {
			<-s.stopped
		}
	})
}

func (s *renderSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *renderSpinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
