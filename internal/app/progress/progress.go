package progress

import (
	"io"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar counts rows processed by a CLI command. A nil or disabled Bar
// ignores every call.
type Bar struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

// New starts a bar of total rows on w. It returns a silent Bar when
// enabled is false.
func New(w io.Writer, enabled bool, total int, label string) *Bar {
	if !enabled {
		return &Bar{}
	}

	container := mpb.New(mpb.WithOutput(w), mpb.WithAutoRefresh())
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label, decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d/%d", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(decor.Percentage(decor.WCSyncSpace)),
	)

	return &Bar{container: container, bar: bar}
}

func (b *Bar) Increment() {
	if b != nil && b.bar != nil {
		b.bar.Increment()
	}
}

func (b *Bar) SetCurrent(done int) {
	if b != nil && b.bar != nil {
		b.bar.SetCurrent(int64(done))
	}
}

// Done completes the bar at its current count, so an early stop still
// renders a finished line, and waits for the last redraw.
func (b *Bar) Done() {
	if b == nil || b.bar == nil {
		return
	}
	b.bar.SetTotal(b.bar.Current(), true)
	b.container.Wait()
}

// Enabled reports whether commands should draw bars on stderr: when forced,
// or when stderr is a terminal.
func Enabled(forced bool) bool {
	return forced || isTerminal(os.Stderr)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
