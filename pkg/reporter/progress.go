package reporter

import (
	"fmt"
	"io"
	"strings"
)

const (
	progressLabel = "Overall Progress"
	progressWidth = 30
)

type progress struct {
	total int
	done  int
}

// StartProgress begins a counter over total items. The bar is transient: it
// is redrawn under every printed line and erased by StopProgress.
func (c *Console) StartProgress(total int) {
	c.progress = &progress{total: total}
	if c.terminal {
		c.progress.draw(c.out)
	}
}

// Advance marks one more item as finished.
func (c *Console) Advance() {
	if c.progress == nil {
		return
	}
	if c.progress.done < c.progress.total {
		c.progress.done++
	}
	if c.terminal {
		_, _ = io.WriteString(c.out, "\r\033[K")
		c.progress.draw(c.out)
	}
}

func (c *Console) StopProgress() {
	if c.progress != nil && c.terminal {
		_, _ = io.WriteString(c.out, "\r\033[K")
	}
	c.progress = nil
}

// Completed returns how many items were marked finished, or -1 without an
// active counter.
func (c *Console) Completed() int {
	if c.progress == nil {
		return -1
	}
	return c.progress.done
}

func (p *progress) draw(out io.Writer) {
	_, _ = io.WriteString(out, p.render())
}

func (p *progress) render() string {
	filled := progressWidth
	if p.total > 0 {
		filled = p.done * progressWidth / p.total
	}
	return fmt.Sprintf("%s [%s%s] %d/%d",
		progressLabel,
		strings.Repeat("#", filled),
		strings.Repeat("-", progressWidth-filled),
		p.done, p.total)
}
