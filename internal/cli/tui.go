package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ParaphraseListModel - Interactive paraphrase browser
// =============================================================================

// ParaphraseListModel is the bubbletea model for browsing paraphrases.
// Enter selects the paraphrase under the cursor; t toggles between sentences
// and bracketed trees.
type ParaphraseListModel struct {
	Trees     []string
	Sentences []string
	Total     int
	Cursor    int
	Offset    int
	Height    int
	ShowTrees bool

	// Selected is the index of the chosen paraphrase, or -1.
	Selected int
}

// NewParaphraseListModel creates a list over trees. total is the size of the
// expansion the trees were sampled from.
func NewParaphraseListModel(trees []string, total int) ParaphraseListModel {
	sentences := make([]string, len(trees))
	for i, t := range trees {
		sentences[i] = sentence(t)
	}
	return ParaphraseListModel{
		Trees:     trees,
		Sentences: sentences,
		Total:     total,
		Height:    15,
		Selected:  -1,
	}
}

func (m ParaphraseListModel) Init() tea.Cmd {
	return nil
}

func (m ParaphraseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Trees)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "t":
			m.ShowTrees = !m.ShowTrees
		case "enter":
			if len(m.Trees) == 0 {
				return m, nil
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ParaphraseListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Paraphrases"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  t trees/sentences  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Trees))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		text := m.Sentences[i]
		if m.ShowTrees {
			text = m.Trees[i]
		}
		rows = append(rows, []string{cursor, fmt.Sprint(i + 1), text})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	heading := "Sentence"
	if m.ShowTrees {
		heading = "Tree"
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", heading).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Trees))
	if m.Total > len(m.Trees) {
		status += fmt.Sprintf(" sampled from %d", m.Total)
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}
