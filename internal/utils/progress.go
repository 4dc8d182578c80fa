package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress bar descriptions
const (
	DescWarming  = "Warming"
	DescChecking = "Checking"
)

// NewProgressBar creates a progress bar writing to w. A negative total
// renders a spinner instead of a bar.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts, progressbar.OptionShowIts())
	}

	return progressbar.NewOptions(total, opts...)
}
