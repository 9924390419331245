package styles

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// ProgressBar renders a summary as a fixed-width bar followed by "a / b (p%)".
func (s *Styles) ProgressBar(summary domain.ProgressSummary, width int) string {
	if width < 1 {
		width = 1
	}
	percent := summary.Percent()
	filled := int(percent * float64(width) / 100)
	if filled > width {
		filled = width
	}

	bar := s.ProgressFilled.Render(strings.Repeat("█", filled)) +
		s.ProgressEmpty.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s %s (%.0f%%)", bar, summary.String(), percent)
}
