package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/green/chipsel/internal/tui/styles"
)

// StatusBar displays key help, a transient message and the selection count
type StatusBar struct {
	styles     *styles.Styles
	keys       *styles.KeyMap
	help       help.Model
	width      int
	message    string
	messageExp time.Time
	selected   int
	fields     int
	now        func() time.Time
}

// NewStatusBar creates a new status bar component
func NewStatusBar(s *styles.Styles, keys *styles.KeyMap) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.HelpDesc
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.HelpDesc

	return &StatusBar{
		styles: s,
		keys:   keys,
		help:   h,
		now:    time.Now,
	}
}

// SetWidth sets the component width
func (s *StatusBar) SetWidth(width int) {
	s.width = width
	s.help.Width = width
}

// SetMessage sets a temporary message; a zero duration keeps it until replaced
func (s *StatusBar) SetMessage(msg string, duration time.Duration) {
	s.message = msg
	if duration > 0 {
		s.messageExp = s.now().Add(duration)
	} else {
		s.messageExp = time.Time{}
	}
}

// Message returns the current message, if it has not expired
func (s *StatusBar) Message() string {
	if s.message != "" && !s.messageExp.IsZero() && s.now().After(s.messageExp) {
		s.message = ""
	}
	return s.message
}

// SetCounts records how many values are selected across how many fields
func (s *StatusBar) SetCounts(selected, fields int) {
	s.selected = selected
	s.fields = fields
}

// ToggleFullHelp switches between short and full key help
func (s *StatusBar) ToggleFullHelp() {
	s.help.ShowAll = !s.help.ShowAll
}

// View renders the bar
func (s *StatusBar) View() string {
	left := s.help.View(s.keys)
	center := s.Message()
	right := s.styles.Muted.Render(fmt.Sprintf("%d selected in %d field(s)", s.selected, s.fields))

	if s.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, left, center+"  "+right)
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	if leftLen+centerLen+rightLen+2 >= s.width {
		// The message wins over key help when space is short
		if center != "" {
			left, leftLen = center, centerLen
		}
		padding := s.width - leftLen - rightLen
		if padding < 1 {
			padding = 1
		}
		return s.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
	}

	// Distribute space
	leftPadding := (s.width-centerLen)/2 - leftLen
	if leftPadding < 1 {
		leftPadding = 1
	}
	rightPadding := s.width - leftLen - leftPadding - centerLen - rightLen
	if rightPadding < 1 {
		rightPadding = 1
	}

	content := left + strings.Repeat(" ", leftPadding) + center + strings.Repeat(" ", rightPadding) + right
	return s.styles.StatusBar.Render(content)
}
