// Package report renders extracted parameter families as a terminal
// report.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// Build returns a markdown summary of the servo-loop and feedforward
// parameter families, one table per axis, axes in numeric order.
func Build(servo, feedforward domain.AxisParameters) string {
	var b strings.Builder
	b.WriteString("# Calculated Parameters\n")
	writeFamily(&b, "Servo Loop", servo)
	writeFamily(&b, "Feedforward", feedforward)
	return b.String()
}

// Render pipes markdown through a terminal renderer with automatic
// light/dark detection.
func Render(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

func writeFamily(b *strings.Builder, title string, params domain.AxisParameters) {
	fmt.Fprintf(b, "\n## %s\n", title)
	if len(params) == 0 {
		b.WriteString("\nNo parameters in this family.\n")
		return
	}
	for _, axis := range sortedAxes(params) {
		fmt.Fprintf(b, "\n### Axis %s\n\n", axis)
		b.WriteString("| Parameter | Value |\n|---|---|\n")
		for _, p := range params[axis] {
			fmt.Fprintf(b, "| %s | %s |\n", p.Name, p.Value)
		}
	}
}

// sortedAxes orders axis keys numerically where possible, lexically
// otherwise.
func sortedAxes(params domain.AxisParameters) []string {
	axes := make([]string, 0, len(params))
	for axis := range params {
		axes = append(axes, axis)
	}
	sort.Slice(axes, func(i, j int) bool {
		ni, errI := strconv.Atoi(axes[i])
		nj, errJ := strconv.Atoi(axes[j])
		if errI == nil && errJ == nil {
			return ni < nj
		}
		return axes[i] < axes[j]
	})
	return axes
}
