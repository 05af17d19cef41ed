package dwell

import "fmt"

// Humanize renders a second count as a compact duration, keeping the
// two most significant units: "3d4h", "2h15m", "45m", "30s".
func Humanize(seconds float64) string {
	s := int64(seconds)
	if s < 0 {
		s = 0
	}

	days := s / 86400
	hours := (s % 86400) / 3600
	minutes := (s % 3600) / 60

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", s%60)
	}
}
