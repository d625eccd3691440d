package reports

import (
	"fmt"
	"strings"
	"time"
)

// summarySteps caps the treatment and prevention lists in a summary.
const summarySteps = 5

// Summarize renders the plain-text body of a report generated at now.
func Summarize(cmd GenerateCommand, now time.Time) string {
	var b strings.Builder

	result := cmd.Analysis.Result
	det := result.Detection

	fmt.Fprintf(&b, "Analysis Report - %s\n\n", now.Format(time.DateOnly))

	b.WriteString("DISEASE DETECTION RESULTS:\n")
	fmt.Fprintf(&b, "- Plant Type: %s\n", cmd.Analysis.PlantType)
	fmt.Fprintf(&b, "- Detected Condition: %s\n", result.Disease.Name)
	fmt.Fprintf(&b, "- Confidence Level: %.1f%%\n", det.Confidence*100)
	if det.IsFallback {
		fmt.Fprintf(&b, "- Model: %s (fallback estimate)\n", det.ModelUsed)
	} else {
		fmt.Fprintf(&b, "- Model: %s\n", det.ModelUsed)
	}
	b.WriteString("\n")

	if w := cmd.Weather; w != nil {
		b.WriteString("WEATHER CONDITIONS:\n")
		if w.FeelsLike != nil {
			fmt.Fprintf(&b, "- Temperature: %g°C (Feels like %g°C)\n", w.Temperature, *w.FeelsLike)
		} else {
			fmt.Fprintf(&b, "- Temperature: %g°C\n", w.Temperature)
		}
		fmt.Fprintf(&b, "- Humidity: %g%%\n", w.Humidity)
		if w.Description != "" {
			fmt.Fprintf(&b, "- Conditions: %s\n", w.Description)
		}
		if w.Location != nil {
			fmt.Fprintf(&b, "- Location: %s, %s\n", w.Location.Name, w.Location.Country)
		}
		b.WriteString("\n")
	}

	if r := cmd.Risk; r != nil {
		b.WriteString("RISK ASSESSMENT:\n")
		fmt.Fprintf(&b, "- Risk Level: %s\n", r.RiskLevel)
		fmt.Fprintf(&b, "- Assessment: %s\n", r.Description)
		fmt.Fprintf(&b, "- Source: %s\n\n", r.Source)
	}

	writeSteps(&b, "IMMEDIATE TREATMENT RECOMMENDATIONS:", result.Disease.Treatment)
	writeSteps(&b, "PREVENTION MEASURES:", result.Disease.Prevention)

	if cmd.UserNotes != "" {
		b.WriteString("NOTES:\n")
		b.WriteString(cmd.UserNotes)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Report generated on: %s\n", now.Format(time.RFC1123))
	b.WriteString("Canopy - Plant Disease Detection System")

	return b.String()
}

func writeSteps(b *strings.Builder, heading string, steps []string) {
	if len(steps) == 0 {
		return
	}
	b.WriteString(heading)
	b.WriteString("\n")
	for i, s := range steps[:min(len(steps), summarySteps)] {
		fmt.Fprintf(b, "%d. %s\n", i+1, s)
	}
	b.WriteString("\n")
}

// DownloadFilename names the attachment served for a report.
func DownloadFilename(r *Report) string {
	return fmt.Sprintf("canopy_report_%s_%s.txt", r.ID, r.CreatedAt.Format(time.DateOnly))
}
