package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// SearchModel is the "/" prompt that fuzzy-matches panel titles.
type SearchModel struct {
	input    textinput.Model
	targets  []string
	titles   []string
	matches  []int
	selected int
	theme    Theme
}

// NewSearchModel creates an idle search prompt.
func NewSearchModel(theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "find panel..."
	ti.Prompt = "/"
	ti.CharLimit = 64
	ti.Width = 30
	return SearchModel{input: ti, theme: theme}
}

// Open resets the prompt for panels and focuses it.
func (s *SearchModel) Open(panels []model.PanelRecord) tea.Cmd {
	s.targets = make([]string, len(panels))
	s.titles = make([]string, len(panels))
	for i, p := range panels {
		s.titles[i] = p.Title
		s.targets[i] = p.Title + " " + p.ID
	}
	s.input.SetValue("")
	s.filter()
	return s.input.Focus()
}

// Update handles a key. done reports the prompt closed; index is the
// chosen panel or -1 when cancelled or nothing matched.
func (s *SearchModel) Update(msg tea.KeyMsg) (done bool, index int, cmd tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		s.input.Blur()
		return true, -1, nil
	case "enter":
		s.input.Blur()
		return true, s.Selected(), nil
	case "up", "ctrl+p":
		if s.selected > 0 {
			s.selected--
		}
		return false, -1, nil
	case "down", "ctrl+n", "tab":
		if s.selected < len(s.matches)-1 {
			s.selected++
		}
		return false, -1, nil
	}
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.filter()
	}
	return false, -1, cmd
}

// Selected returns the highlighted panel index or -1.
func (s *SearchModel) Selected() int {
	if s.selected < 0 || s.selected >= len(s.matches) {
		return -1
	}
	return s.matches[s.selected]
}

// Query returns the current input.
func (s *SearchModel) Query() string { return s.input.Value() }

func (s *SearchModel) filter() {
	s.selected = 0
	query := strings.TrimSpace(s.input.Value())
	if query == "" {
		s.matches = make([]int, len(s.targets))
		for i := range s.matches {
			s.matches[i] = i
		}
		return
	}
	found := fuzzy.Find(query, s.targets)
	s.matches = make([]int, 0, len(found))
	for _, m := range found {
		s.matches = append(s.matches, m.Index)
	}
}

// View renders the prompt with the highlighted match, within width cells.
func (s SearchModel) View(width int) string {
	line := s.input.View()
	hint := "no match"
	if i := s.Selected(); i >= 0 {
		hint = runewidth.Truncate(s.titles[i], 40, "…")
		if len(s.matches) > 1 {
			hint += "  (" + strconv.Itoa(s.selected+1) + "/" + strconv.Itoa(len(s.matches)) + ")"
		}
	}
	line += "  " + s.theme.Renderer.NewStyle().Foreground(s.theme.Subtext).Render(hint)
	return fitLine(line, width)
}
