package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/cityfix/cityfix-api/models"
)

// DigestSubject is the subject line of the daily digest for day
func DigestSubject(day time.Time) string {
	return "CityFix daily digest " + day.UTC().Format("2006-01-02")
}

// DigestText renders the plain-text body of the daily statistics digest
func DigestText(summary models.SummaryStats, categories []models.CategoryCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total reports: %d\n", summary.TotalReports)
	fmt.Fprintf(&b, "Pending: %d\n", summary.ByStatus.Pending)
	fmt.Fprintf(&b, "In progress: %d\n", summary.ByStatus.InProgress)
	fmt.Fprintf(&b, "Resolved: %d\n", summary.ByStatus.Resolved)
	fmt.Fprintf(&b, "Rejected: %d\n", summary.ByStatus.Rejected)
	fmt.Fprintf(&b, "Resolution rate: %.1f%%\n", summary.ResolutionRate)
	fmt.Fprintf(&b, "Resolution time: avg %.2fh, median %.2fh\n", summary.AvgResolutionTimeHours, summary.MedianResolutionTimeHours)
	fmt.Fprintf(&b, "First response: avg %.2fh, median %.2fh\n", summary.AvgFirstResponseTimeHours, summary.MedianFirstResponseTimeHours)

	if len(categories) > 0 {
		b.WriteString("\nBy category:\n")
		for _, c := range categories {
			fmt.Fprintf(&b, "  %s: %d\n", c.Category, c.Count)
		}
	}
	return b.String()
}
