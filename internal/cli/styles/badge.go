package styles

import (
	"fmt"
	"time"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// StatusBadge renders a delivery status.
func (t *Theme) StatusBadge(status entity.DeliveryStatus) string {
	switch status {
	case entity.DeliveryAcked:
		return t.SuccessStyle.Render(string(status))
	case entity.DeliveryNacked:
		return t.ErrorStyle.Render(string(status))
	default:
		return t.Subtle.Render(string(status))
	}
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	if tm.IsZero() {
		return "never"
	}
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
