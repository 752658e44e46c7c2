package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/chorechart/internal/models"
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#7C7C7C", Dark: "#8A8A8A"}
	errorColor  = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	menuStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 2)
)

const aboutText = "Chore Chart helps housemates keep a record of what needs doing " +
	"every week and who is doing it. The leaderboard shows who has earned " +
	"the most points for household tasks so far."

var menuEntries = []struct{ label, key string }{
	{"About", "A"},
	{"Create household", "C"},
	{"Add to household", "E"},
	{"Remove from household", "R"},
	{"Wipe entire database", "W"},
	{"View household", "V"},
	{"Log chores done", "L"},
	{"Show leaderboard", "S"},
	{"Quit", "Q"},
}

func renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to Chore Chart"))
	b.WriteString("\n\n")
	for i, e := range menuEntries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-24s (%s)", e.label, e.key)
	}
	return menuStyle.Render(b.String())
}

func renderAbout() string {
	return titleStyle.Render("Chore Chart") + "\n\n" + lipgloss.NewStyle().Width(72).Render(aboutText)
}

// renderList prints names as a numbered list under a heading.
func renderList(heading string, names []string) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(heading + ":"))
	if len(names) == 0 {
		b.WriteString("\n  " + mutedStyle.Render("(none)"))
	}
	for i, name := range names {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, name)
	}
	return b.String()
}

func renderHousehold(h *models.Household) string {
	chores := make([]string, len(h.Chores))
	for i, c := range h.Chores {
		chores[i] = fmt.Sprintf("%s (%d)", c.Name, c.Frequency)
	}

	return strings.Join([]string{
		titleStyle.Render("Household: " + h.Name),
		renderList("Participants", h.Participants),
		renderList("Weekly chores", chores),
	}, "\n\n")
}

// renderLeaderboard draws one row per standing with a column per chore.
// standings is board.Standings or a reordering of it.
func renderLeaderboard(board *models.Leaderboard, standings []models.Standing) string {
	headers := []string{"Participant"}
	if len(board.Standings) > 0 {
		for _, cs := range board.Standings[0].Scores {
			headers = append(headers, cs.Chore)
		}
	}
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		row := make([]string, 0, len(headers))
		row = append(row, s.Participant)
		for _, cs := range s.Scores {
			row = append(row, strconv.Itoa(cs.Score))
		}
		row = append(row, strconv.Itoa(s.Total))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(accentColor)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)

	return titleStyle.Render("Leaderboard: "+board.Household) + "\n" + t.String()
}

func renderError(err error) string {
	return errorStyle.Render(err.Error())
}
