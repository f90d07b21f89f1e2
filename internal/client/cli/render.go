package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(faintStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " kg"
}

func renderSuggestion(s *models.CropSuggestion) string {
	var b strings.Builder

	title := "Recommended crops"
	if s.Region != "" {
		title += " for " + s.Region
	}
	if s.Season != "" {
		title += " (" + s.Season + ")"
	}
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")

	t := newTable("Crop", "Total yield", "Yield per acre", "Risk")
	for _, r := range s.Recommendations {
		t.Row(r.Crop, formatKg(r.EstimatedTotalYieldKg), formatKg(r.ExpectedYieldPerAcreKg), fmt.Sprintf("%.0f%%", r.RiskPercent))
	}
	b.WriteString(t.Render())

	if s.Reason != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(s.Reason))
	}
	return b.String()
}

func renderCalendar(c *models.CropCalendar) string {
	var b strings.Builder

	title := "Crop calendar"
	if c.DurationWeeks > 0 {
		title += fmt.Sprintf(" (%d weeks)", c.DurationWeeks)
	}
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")

	t := newTable("Week", "Task", "Duration", "Description")
	for _, w := range c.Calendar {
		for _, task := range w.Tasks {
			t.Row(strconv.Itoa(w.Week), task.Title, task.Duration, task.Description)
		}
	}
	b.WriteString(t.Render())

	if c.WeatherSummary != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(c.WeatherSummary))
	}
	return b.String()
}

func renderDiagnosis(d *models.Diagnosis) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Diagnosis"))

	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(label+":") + " " + value)
	}
	line("Disease", d.Disease)
	line("Plant", d.Plant)
	line("Type", d.TypeOfDisease)
	line("Plant health", d.PlantHealth)
	line("Leaf health", d.LeafHealth)
	for _, s := range d.DiseaseSymptoms {
		b.WriteString("\n  - " + s)
	}
	if d.TreatmentRequired {
		line("Treatment", withDefault(d.TreatmentProcedure, "required"))
	} else {
		line("Treatment", "not required")
	}
	return b.String()
}

func renderProfile(u *models.User) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("[" + u.Initial() + "] " + u.Username))

	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(label+":") + " " + value)
	}
	line("Phone", u.PhoneNo)
	line("Email", u.Email)
	line("Role", u.Role)
	line("Gender", u.Gender)
	line("Languages", strings.Join(u.LanguageSpoken, ", "))
	if loc := u.Location; loc != nil {
		line("Location", strings.Trim(loc.City+", "+loc.State, ", "))
	}
	return b.String()
}
