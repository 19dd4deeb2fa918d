package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docvet/docvet/internal/domain"
	"github.com/docvet/docvet/internal/domain/gate"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	infoStyle     = lipgloss.NewStyle().Foreground(info)
	criticalStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(danger)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

var statusLabels = map[domain.Status]string{
	domain.StatusSuccess:      "success",
	domain.StatusSyntaxError:  "syntax errors",
	domain.StatusImportError:  "import errors",
	domain.StatusRuntimeError: "runtime errors",
	domain.StatusTimeout:      "timeouts",
}

// RenderReport renders a full validation report for the terminal:
// summary box, the strict status partition, then violations with the
// criticals set apart from everything else.
func RenderReport(r *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	rate := r.SuccessRate() * 100
	title := headerStyle.Render("docvet")
	subtitle := dimStyle.Render("Documentation Example Health")
	rateStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(rateColor(rate)).
		Render(fmt.Sprintf("%.1f%%", rate))
	countLine := dimStyle.Render(fmt.Sprintf("%d example(s)", r.TotalExamples))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + rateStyled + "  " + countLine))
	b.WriteString("\n\n")

	// ── Status partition ──
	for _, st := range domain.AllStatuses {
		renderStatusRow(&b, st, r.CountsByStatus[st], r.TotalExamples)
	}
	if r.MalformedExamples > 0 {
		fmt.Fprintf(&b, "    %s %s\n",
			warnStyle.Render("●"),
			dimStyle.Render(fmt.Sprintf("%d malformed block(s) included", r.MalformedExamples)))
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Violations, criticals first ──
	criticals := r.CriticalViolations()
	others := nonCritical(r.Violations)

	if len(criticals) == 0 && len(others) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return b.String()
	}

	if len(criticals) > 0 {
		b.WriteString("  " + sectionStyle.Render("Critical") + "  " +
			dimStyle.Render(fmt.Sprintf("(%d)", len(criticals))) + "\n\n")
		for _, v := range criticals {
			renderViolation(&b, v)
		}
		b.WriteString("\n")
	}

	if len(others) > 0 {
		b.WriteString("  " + titleStyle.Render("Other findings") + "  " +
			dimStyle.Render(fmt.Sprintf("(%d)", len(others))) + "\n\n")
		for _, v := range others {
			renderViolation(&b, v)
		}
	}

	return b.String()
}

func renderStatusRow(b *strings.Builder, st domain.Status, count, total int) {
	var icon string
	switch {
	case st == domain.StatusSuccess:
		icon = passStyle.Render("●")
	case count == 0:
		icon = faintStyle.Render("○")
	default:
		icon = failStyle.Render("●")
	}

	bar := coloredBar(count, total, 20, st == domain.StatusSuccess)
	name := padRight(statusLabels[st], 16)
	fmt.Fprintf(b, "    %s %s %s  %s\n", icon, titleStyle.Render(name), bar, dimStyle.Render(fmt.Sprintf("%d", count)))
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	tag := severityTag(v.Severity)
	fmt.Fprintf(b, "    %s %s  %s\n", tag, fileStyle.Render(v.ExampleID), faintStyle.Render(v.Rule))
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(v.Message))
	if v.Hint != "" {
		fmt.Fprintf(b, "         %s\n", faintStyle.Render(v.Hint))
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityCritical:
		return criticalStyle.Render("crit ")
	case domain.SeverityHigh:
		return highStyle.Render("high ")
	case domain.SeverityMedium:
		return warnStyle.Render("med  ")
	default:
		return infoStyle.Render("low  ")
	}
}

func nonCritical(vs []domain.Violation) []domain.Violation {
	var out []domain.Violation
	for _, v := range vs {
		if v.Severity != domain.SeverityCritical {
			out = append(out, v)
		}
	}
	return out
}

func coloredBar(count, total, width int, invert bool) string {
	if total == 0 {
		total = 1
	}
	filled := count * width / total
	if filled > width {
		filled = width
	}
	empty := width - filled

	color := danger
	if invert {
		color = success
	}
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func rateColor(rate float64) lipgloss.Color {
	switch {
	case rate >= 90:
		return success
	case rate >= 60:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderDecision formats the gate verdict.
func RenderDecision(d gate.Decision) string {
	var b strings.Builder
	b.WriteString("\n")

	switch d.Outcome {
	case gate.NoBaseline:
		b.WriteString("  " + dimStyle.Render("No baseline stored; run with --accept to create one.") + "\n")
	case gate.BaselineMatch:
		b.WriteString("  " + passStyle.Render("Baseline match.") + "\n")
	case gate.ImprovementDetected:
		b.WriteString("  " + passStyle.Render(fmt.Sprintf("Improvement: %d example(s) fixed.", len(d.Improvements))) + "\n")
		for _, id := range d.Improvements {
			b.WriteString("    " + passStyle.Render("↑") + " " + fileStyle.Render(id) + "\n")
		}
	case gate.RegressionDetected:
		b.WriteString("  " + criticalStyle.Render("Regression detected.") + "\n")
		for _, reg := range d.Regressions {
			b.WriteString("    " + failStyle.Render("↓") + " " + fileStyle.Render(reg.ExampleID) +
				"  " + dimStyle.Render(reg.Reason) + "\n")
		}
		for _, id := range d.NewCriticals {
			b.WriteString("    " + failStyle.Render("!") + " " + dimStyle.Render("new critical violation "+id) + "\n")
		}
	}

	return b.String()
}

// RenderBaseline summarizes a stored baseline.
func RenderBaseline(b *domain.Baseline) string {
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString("  " + titleStyle.Render("Baseline") + "\n")
	out.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	hash := b.CommitHash
	if len(hash) > 7 {
		hash = hash[:7]
	}
	if hash == "" {
		hash = "·······"
	}

	fmt.Fprintf(&out, "  %s  %s  %s\n",
		dimStyle.Render(b.CreatedAt.Format("2006-01-02")),
		faintStyle.Render(hash),
		dimStyle.Render(fmt.Sprintf("digest %.12s…", b.Digest)))

	failing := 0
	for _, st := range b.Statuses {
		if st != domain.StatusSuccess {
			failing++
		}
	}
	fmt.Fprintf(&out, "  %s\n",
		dimStyle.Render(fmt.Sprintf("%d example(s), %d failing, %d accepted waiver(s)",
			len(b.Statuses), failing, len(b.AcceptedViolationIDs))))

	return out.String()
}
