package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/green/chipsel/internal/multiselect"
	"github.com/green/chipsel/internal/tui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With a label and width 40 the layout is:
//
//	line 0  label
//	line 1  top border
//	line 2  chips, clear-all at x=35, chevron at x=37
//	line 3  separator when open, menu items from line 4
func fruitInput() multiselect.Input {
	return multiselect.Input{
		Label:       "Fruit",
		Placeholder: "Pick some",
		Options: []multiselect.RawOption{
			{Value: "a", Text: "Apple", Color: "#F87171"},
			{Value: "b", Text: "Banana", Color: "#FDE047"},
			{Value: "c", Text: "Cherry", Color: "#BE123C"},
		},
	}
}

func newFruit(t *testing.T, in multiselect.Input) *MultiSelect {
	t.Helper()
	m := NewMultiSelect("fruit", in, styles.ForTheme("dark"), nil)
	m.SetWidth(40)
	bus := multiselect.NewClickBus()
	m.Widget().Attach(bus)
	t.Cleanup(m.Widget().Detach)
	m.drain()
	return m
}

func plainLines(m *MultiSelect) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func TestMultiSelectPlaceholder(t *testing.T) {
	m := newFruit(t, fruitInput())

	lines := plainLines(m)
	require.Len(t, lines, 4)
	assert.Equal(t, "Fruit", lines[0])
	assert.Contains(t, lines[2], "Pick some")
	assert.Contains(t, lines[2], chevronDown)
	assert.NotContains(t, lines[2], clearAllIcon)
}

func TestMultiSelectRequiredMarkerAndHelp(t *testing.T) {
	in := fruitInput()
	in.Required = true
	m := newFruit(t, in)

	lines := plainLines(m)
	assert.Equal(t, "Fruit *", lines[0])
	assert.Equal(t, "This field is required", lines[len(lines)-1])

	in.HelpText = "Choose at least one"
	m = newFruit(t, in)
	lines = plainLines(m)
	assert.Equal(t, "Choose at least one", lines[len(lines)-1])
}

func TestMultiSelectLinesHaveFixedWidth(t *testing.T) {
	in := fruitInput()
	in.Selected = "a,b,c"
	m := newFruit(t, in)

	for i, line := range plainLines(m)[1:] {
		assert.Equal(t, 40, ansi.StringWidth(line), "line %d", i+1)
	}
}

func TestMultiSelectSelectorOpensMenu(t *testing.T) {
	m := newFruit(t, fruitInput())

	require.True(t, m.HandleClick(5, 2))
	assert.True(t, m.Widget().State().Open)

	lines := plainLines(m)
	require.Len(t, lines, 8)
	assert.Contains(t, lines[2], chevronUp)
	assert.Contains(t, lines[4], "Apple")
	assert.Contains(t, lines[5], "Banana")
	assert.Contains(t, lines[6], "Cherry")
}

func TestMultiSelectMenuItemSelects(t *testing.T) {
	m := newFruit(t, fruitInput())
	m.HandleClick(5, 2)

	z, ok := m.ZoneAt(3, 5)
	require.True(t, ok)
	assert.Equal(t, ZoneMenuItem, z.Kind)
	assert.Equal(t, "b", z.Value)

	m.HandleClick(3, 5)
	assert.Equal(t, []string{"b"}, m.Widget().Values())

	lines := plainLines(m)
	assert.Contains(t, lines[2], "Banana")
	assert.Contains(t, lines[2], clearAllIcon)
	assert.Contains(t, lines[4], "Apple")
	assert.Contains(t, lines[5], "Cherry")
}

func TestMultiSelectChipRemoveRestoresMenuPosition(t *testing.T) {
	in := fruitInput()
	in.Selected = "a"
	m := newFruit(t, in)

	// " Apple × " starts at x=2, so × sits at x=9
	z, ok := m.ZoneAt(9, 2)
	require.True(t, ok)
	assert.Equal(t, ZoneChipRemove, z.Kind)
	assert.Equal(t, "a", z.Value)

	m.HandleClick(9, 2)
	assert.Empty(t, m.Widget().Values())

	m.HandleClick(5, 2)
	lines := plainLines(m)
	assert.Contains(t, lines[4], "Apple")
	assert.Contains(t, lines[5], "Banana")
}

func TestMultiSelectClearAll(t *testing.T) {
	in := fruitInput()
	in.Selected = "a,b"
	m := newFruit(t, in)

	z, ok := m.ZoneAt(35, 2)
	require.True(t, ok)
	assert.Equal(t, ZoneClearAll, z.Kind)

	m.HandleClick(35, 2)
	assert.Empty(t, m.Widget().Values())

	msgs := m.drain()
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Value)
	assert.Equal(t, []string{"b"}, msgs[0].Values)
	assert.Equal(t, "b", msgs[1].Value)
	assert.Empty(t, msgs[1].Values)
	assert.Equal(t, multiselect.ChangeDeselect, msgs[1].Kind)
}

func TestMultiSelectDisabledHidesControls(t *testing.T) {
	in := fruitInput()
	in.Selected = "a"
	in.Disabled = true
	m := newFruit(t, in)

	lines := plainLines(m)
	assert.Contains(t, lines[2], "Apple")
	assert.NotContains(t, lines[2], removeIcon)
	assert.NotContains(t, lines[2], clearAllIcon)

	m.HandleClick(5, 2)
	assert.False(t, m.Widget().State().Open)
	assert.Equal(t, []string{"a"}, m.Widget().Values())
}

func TestMultiSelectChipsWrap(t *testing.T) {
	in := fruitInput()
	in.Selected = "a,b,c"
	m := newFruit(t, in)
	m.SetWidth(MinWidth)

	lines := plainLines(m)
	// label, top, three chip rows, bottom
	require.Len(t, lines, 6)
	assert.Contains(t, lines[2], "Apple")
	assert.Contains(t, lines[3], "Banana")
	assert.Contains(t, lines[4], "Cherry")

	z, ok := m.ZoneAt(5, 4)
	require.True(t, ok)
	assert.Equal(t, ZoneSelector, z.Kind)
}

func TestMultiSelectUpdateTranslatesOrigin(t *testing.T) {
	m := newFruit(t, fruitInput())
	m.SetOrigin(3, 10)

	bounds := m.Widget().Bounds()
	assert.Equal(t, multiselect.Rect{MinX: 3, MinY: 10, MaxX: 43, MaxY: 14}, bounds)

	_, cmd := m.Update(tea.MouseMsg{X: 8, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Nil(t, cmd)
	assert.True(t, m.Widget().State().Open)

	// Menu item "a" is on line 4
	_, cmd = m.Update(tea.MouseMsg{X: 6, Y: 14, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"a"}, m.Widget().Values())

	// Releases are ignored
	_, cmd = m.Update(tea.MouseMsg{X: 6, Y: 14, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"a"}, m.Widget().Values())
}

func TestMultiSelectFlushEmpty(t *testing.T) {
	m := newFruit(t, fruitInput())
	assert.Nil(t, m.Flush())
}

func TestMultiSelectMissBesideControl(t *testing.T) {
	m := newFruit(t, fruitInput())
	_, ok := m.ZoneAt(45, 2)
	assert.False(t, ok)
	assert.False(t, m.HandleClick(45, 2))
}

func TestMultiSelectPreselectionQueuesOneMessage(t *testing.T) {
	in := fruitInput()
	in.Selected = "c,a"
	m := NewMultiSelect("fruit", in, styles.ForTheme("dark"), nil)
	m.Widget().Attach(multiselect.NewClickBus())
	defer m.Widget().Detach()

	msgs := m.drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, SelectionChangedMsg{
		Field:  "fruit",
		Kind:   multiselect.ChangePreselect,
		Values: []string{"c", "a"},
	}, msgs[0])
}
