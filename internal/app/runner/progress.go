package runner

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressReporter renders batch progress for interactive runs.
type ProgressReporter interface {
	StartBatch(participantID string, total int) ProgressBar
}

// ProgressBar tracks one batch.
type ProgressBar interface {
	Increment()
	Complete()
}

// NopProgress disables progress rendering (serve mode, tests).
type NopProgress struct{}

func (NopProgress) StartBatch(string, int) ProgressBar { return nopBar{} }

type nopBar struct{}

func (nopBar) Increment() {}
func (nopBar) Complete()  {}

// MpbProgress renders an mpb progress bar to a terminal.
type MpbProgress struct {
	container *mpb.Progress
}

// NewMpbProgress creates a progress renderer writing to w (defaults to
// stderr).
func NewMpbProgress(w io.Writer) *MpbProgress {
	if w == nil {
		w = os.Stderr
	}
	return &MpbProgress{
		container: mpb.New(
			mpb.WithOutput(w),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
	}
}

func (p *MpbProgress) StartBatch(participantID string, total int) ProgressBar {
	description := "Transcribing " + participantID
	bar := p.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
		),
	)
	return &mpbBar{bar: bar}
}

// Wait blocks until all bars have rendered their final state.
func (p *MpbProgress) Wait() {
	p.container.Wait()
}

type mpbBar struct {
	bar *mpb.Bar
}

func (b *mpbBar) Increment() {
	b.bar.Increment()
}

func (b *mpbBar) Complete() {
	b.bar.SetTotal(b.bar.Current(), true)
}

// IsTTY reports whether writer is an interactive terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
