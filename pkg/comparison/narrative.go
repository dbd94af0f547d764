package comparison

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
)

const NoDataNarrative = "No data available for analysis."

const recommendations = "Recommendations: Focus resources on underperforming departments, maintain momentum in " +
	"high-performing areas, and implement best practices from top-improving departments across the organization."

// ExecutiveSummary writes the markdown narrative of a comparison summary.
func ExecutiveSummary(summary Summary) string {
	if summary.Total == 0 {
		return NoDataNarrative
	}

	direction := "improved"
	if summary.Trend() == Decline {
		direction = "declined"
	}

	improvements := "None"
	if len(summary.TopImproved) > 0 {
		items := make([]string, 0, len(summary.TopImproved))
		for _, r := range summary.TopImproved {
			items = append(items, fmt.Sprintf("%s (+%.1f%%)", r.Department, r.Variance))
		}
		improvements = strings.Join(items, ", ")
	}

	highPerformers := "None"
	if len(summary.HighPerformers) > 0 {
		highPerformers = strings.Join(summary.HighPerformers, ", ")
	}

	concerns := "No departments declined"
	if len(summary.TopDeclined) > 0 {
		items := make([]string, 0, len(summary.TopDeclined))
		for _, r := range summary.TopDeclined {
			items = append(items, fmt.Sprintf("%s (%.1f%%)", r.Department, r.Variance))
		}
		concerns = strings.Join(items, ", ")
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "**Overall Performance:** The hospital's overall compliance rate has %s from **%.1f%%** to **%.1f%%**, "+
		"representing a **%+.1f percentage point** change. %d out of %d departments showed improvement, "+
		"while %d departments experienced decline.\n\n",
		direction, summary.MeanBefore, summary.MeanAfter, summary.MeanChange,
		summary.Improved, summary.Total, summary.Declined)
	fmt.Fprintf(&b, "**Key Improvements:** %s demonstrated the most significant improvements. "+
		"Departments achieving %s%%+ compliance include: %s.\n\n",
		improvements, strconv.FormatFloat(summary.Thresholds.HighPerformer, 'f', -1, 64), highPerformers)
	fmt.Fprintf(&b, "**Areas of Concern:** %s require attention. %s\n", concerns, recommendations)
	return b.String()
}

// RenderHTML converts a markdown narrative to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("could not render summary: %w", err)
	}
	return buf.String(), nil
}
