package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/green/chipsel/internal/definition"
	"github.com/green/chipsel/internal/multiselect"
	"github.com/green/chipsel/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoFields() *definition.Definition {
	return &definition.Definition{
		Title: "Groceries",
		Fields: []definition.Field{
			{
				Name:  "fruit",
				Label: "Fruit",
				Options: []multiselect.RawOption{
					{Value: "a", Text: "Apple", Color: "#F87171"},
					{Value: "b", Text: "Banana", Color: "#FDE047"},
					{Value: "c", Text: "Cherry", Color: "#BE123C"},
				},
			},
			{
				Name:     "veg",
				Label:    "Vegetables",
				Selected: "leek",
				Options: []multiselect.RawOption{
					{Value: "leek", Text: "Leek"},
					{Value: "kale", Text: "Kale"},
				},
			},
		},
	}
}

func started(t *testing.T, def *definition.Definition) *Model {
	t.Helper()
	m := NewModel(def, Options{})
	m.Init()
	t.Cleanup(m.Detach)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitAttachesEveryField(t *testing.T) {
	m := NewModel(twoFields(), Options{})
	assert.Equal(t, 0, m.Bus().Len())

	// veg has a pre-selection to report
	assert.NotNil(t, m.Init())
	assert.Equal(t, 2, m.Bus().Len())
	assert.Equal(t, []string{"leek"}, m.Fields()[1].Widget().Values())

	m.Detach()
	assert.Equal(t, 0, m.Bus().Len())
}

func TestModelQuitReleasesListeners(t *testing.T) {
	m := started(t, twoFields())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, m.Bus().Len())
	assert.False(t, m.Result().Submitted)
}

func TestModelCancelReleasesListeners(t *testing.T) {
	m := started(t, twoFields())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, 0, m.Bus().Len())
}

func TestModelLayoutStacksFields(t *testing.T) {
	m := started(t, twoFields())

	first := m.Fields()[0].Widget().Bounds()
	second := m.Fields()[1].Widget().Bounds()
	assert.Equal(t, multiselect.Rect{MinX: 1, MinY: 2, MaxX: 73, MaxY: 6}, first)
	assert.Equal(t, 7, second.MinY)
}

func TestModelClickRoutingAndOutsideClose(t *testing.T) {
	m := started(t, twoFields())
	fruit := m.Fields()[0].Widget()
	veg := m.Fields()[1].Widget()

	// Selector row of the first field
	m.Update(press(5, 4))
	require.True(t, fruit.State().Open)

	// The open menu pushes the second field down
	b := veg.Bounds()
	assert.Equal(t, 11, b.MinY)

	m.Update(press(b.MinX+4, b.MinY+2))
	assert.False(t, fruit.State().Open)
	assert.True(t, veg.State().Open)

	m.Update(press(90, 1))
	assert.False(t, veg.State().Open)
}

func TestModelSubmitBlockedWhileRequiredEmpty(t *testing.T) {
	def := twoFields()
	def.Fields[0].Required = true
	m := started(t, def)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.Result().Submitted)
	assert.Contains(t, ansi.Strip(m.View()), "Fruit: a value is required")
	assert.True(t, errors.Is(m.Validate(), multiselect.ErrRequired))

	// Open the menu, then pick the first item on line 4 of the field
	m.Update(press(5, 4))
	_, cmd = m.Update(press(5, 6))
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"a"}, m.Fields()[0].Widget().Values())
	require.NoError(t, m.Validate())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	res := m.Result()
	assert.True(t, res.Submitted)
	assert.Equal(t, []string{"fruit", "veg"}, res.Order)
	assert.Equal(t, []string{"a"}, res.Values["fruit"])
	assert.Equal(t, []string{"leek"}, res.Values["veg"])
	assert.Equal(t, 0, m.Bus().Len())
}

func TestModelSelectionChangedUpdatesCounts(t *testing.T) {
	m := started(t, twoFields())

	m.Fields()[0].Widget().ClickMenuItem("b")
	m.Update(components.SelectionChangedMsg{Field: "fruit", Kind: multiselect.ChangeSelect, Value: "b", Values: []string{"b"}})

	assert.Contains(t, ansi.Strip(m.View()), "2 selected in 2 field(s)")
}

func TestModelViewHeight(t *testing.T) {
	m := NewModel(twoFields(), Options{Version: "v1.0.0"})
	assert.Equal(t, "Loading...", m.View())

	m.Init()
	defer m.Detach()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	assert.Equal(t, 30, strings.Count(view, "\n")+1)
	assert.Contains(t, ansi.Strip(view), "Groceries v1.0.0")
}

func TestModelSnapshotWithoutSize(t *testing.T) {
	m := NewModel(twoFields(), Options{Title: "Pick"})
	m.Attach()
	defer m.Detach()

	snap := ansi.Strip(m.Snapshot())
	lines := strings.Split(snap, "\n")
	assert.Equal(t, "Pick", lines[0])
	assert.Equal(t, " Fruit", lines[2])
	assert.Contains(t, snap, "Leek")
	// Default width plus the left margin
	assert.Equal(t, components.DefaultWidth+1, ansi.StringWidth(lines[3]))
}

func TestRenderOpen(t *testing.T) {
	closed := ansi.Strip(Render(twoFields(), Options{}, 80, false))
	assert.NotContains(t, closed, "Banana")

	open := ansi.Strip(Render(twoFields(), Options{}, 80, true))
	assert.Contains(t, open, "Banana")
	assert.Contains(t, open, "Kale")
	// Pre-selected values stay out of the menu
	assert.Equal(t, 1, strings.Count(open, "Leek"))
}
