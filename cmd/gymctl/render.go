package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository/seed"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	privateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

var weekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func renderClasses(w io.Writer, title string, klasses []domain.Klass) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(klasses) == 0 {
		b.WriteString(mutedStyle.Render("no classes scheduled"))
		_, err := fmt.Fprintln(w, cardStyle.Render(b.String()))
		return err
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-11s %-24s %-13s %8s", "ID", "TIME", "NAME", "LEVEL", "STUDENTS")))
	total := 0
	for _, k := range klasses {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-6s %-11s %-24s %-13s %8d", k.ID, k.StartTime+"-"+k.EndTime, truncate(k.Name, 24), k.LevelTag, k.StudentCount))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("       " + formatDays(k.Days) + validity(k)))
		total += k.StudentCount
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d classes, %d students", len(klasses), total)))
	_, err := fmt.Fprintln(w, cardStyle.Render(b.String()))
	return err
}

func renderPacks(w io.Writer, packs []domain.TechniquePack) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Technique library"))
	b.WriteString("\n")
	if len(packs) == 0 {
		b.WriteString(mutedStyle.Render("no packs match"))
		_, err := fmt.Fprintln(w, cardStyle.Render(b.String()))
		return err
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %-26s %-20s %s", "ID", "TITLE", "CATEGORY", "ORIGIN")))
	for _, p := range packs {
		origin := string(p.Origin)
		if p.Origin == domain.OriginPrivate {
			origin = privateStyle.Render(origin)
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-18s %-26s %-20s %s", truncate(p.ID, 18), truncate(p.Title, 26), truncate(p.Category, 20), origin))
	}
	_, err := fmt.Fprintln(w, cardStyle.Render(b.String()))
	return err
}

func renderSeedSummary(w io.Writer, path string, data seed.Data) error {
	students := 0
	for _, k := range data.Klasses {
		students += k.StudentCount
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(path),
		fmt.Sprintf("%d packs", len(data.Packs)),
		fmt.Sprintf("%d classes, %d students", len(data.Klasses), students),
		privateStyle.Render("ok"),
	)
	_, err := fmt.Fprintln(w, cardStyle.Render(body))
	return err
}

func formatDays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(weekdayShort) {
			names = append(names, weekdayShort[d])
		}
	}
	return strings.Join(names, " ")
}

func validity(k domain.Klass) string {
	if k.StartDate == "" && k.EndDate == "" {
		return ""
	}
	from, to := k.StartDate, k.EndDate
	if from == "" {
		from = "…"
	}
	if to == "" {
		to = "…"
	}
	return "  (" + from + " to " + to + ")"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
