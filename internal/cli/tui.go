package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/input"
	"github.com/matzehuels/sketchgrid/pkg/render"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

var (
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// moveKeys maps keys to cursor steps. y u b n are the diagonals.
var moveKeys = map[string]grid.Point{
	"left": {X: -1}, "h": {X: -1},
	"right": {X: 1}, "l": {X: 1},
	"up": {Y: -1}, "k": {Y: -1},
	"down": {Y: 1}, "j": {Y: 1},
	"y": {X: -1, Y: -1},
	"u": {X: 1, Y: -1},
	"b": {X: -1, Y: 1},
	"n": {X: 1, Y: 1},
}

// =============================================================================
// EditorModel - Interactive sketch editor
// =============================================================================

// EditorModel is the bubbletea model of the sketch editor. The cursor sits
// on a node of the current scene; moving it with the pen down toggles the
// edge it crosses.
type EditorModel struct {
	Session *session.Session
	Path    string
	Mode    render.Mode
	Cursor  grid.Point // scene node
	Pen     bool
	Dirty   bool
	Status  string
	Err     error

	cellWidth float64
	save      func(path string, s *session.Session) error
}

// NewEditorModel creates an editor over s. save writes the sketch when the
// user presses w.
func NewEditorModel(s *session.Session, path string, cellWidth float64, save func(string, *session.Session) error) EditorModel {
	m := EditorModel{
		Session:   s,
		Path:      path,
		Mode:      render.ModeSubgrid,
		cellWidth: cellWidth,
		save:      save,
	}
	return m.homeCursor()
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Err = nil

	if d, ok := moveKeys[key.String()]; ok {
		return m.move(d), nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.Pen = !m.Pen
	case "t":
		if m.Mode == render.ModeWhole {
			m.Mode = render.ModeSubgrid
		} else {
			m.Mode = render.ModeWhole
		}
		m = m.homeCursor()
		m.Status = m.Mode.String() + " view"
	case "f":
		f := m.Session.RandomFocus()
		m = m.homeCursor()
		m.Dirty = true
		m.Status = "focus " + f.String()
	case "c":
		m.Session.Clear()
		m.Dirty = true
		m.Status = "cleared"
	case "w":
		if err := m.save(m.Path, m.Session); err != nil {
			m.Err = err
			break
		}
		m.Dirty = false
		m.Status = "wrote " + m.Path
	}
	return m, nil
}

// move steps the cursor by d, toggling the crossed edge when the pen is
// down. The subgrid view clamps at its border; the whole view wraps.
func (m EditorModel) move(d grid.Point) EditorModel {
	scene := m.Session.Scene(m.Mode)
	from := m.Cursor
	to := grid.Point{X: from.X + d.X, Y: from.Y + d.Y}
	if m.Mode == render.ModeSubgrid && (to.X < 0 || to.Y < 0 || to.X > int(scene.Width) || to.Y > int(scene.Height)) {
		return m
	}

	if m.Pen {
		edits := m.Session.Drag([]session.Pointer{m.pixel(scene, from), m.pixel(scene, to)},
			input.WithMode(m.Mode), input.WithCellWidth(m.cellWidth))
		if len(edits) == 0 {
			m.Status = "outside the focus division"
		} else {
			e := edits[0]
			m.Dirty = true
			m.Status = fmt.Sprintf("toggled %s at %s", e.Layer, e.Cell)
		}
	}

	if m.Mode == render.ModeWhole {
		to = grid.Point{X: grid.Wrap(to.X, scene.GridSize), Y: grid.Wrap(to.Y, scene.GridSize)}
	}
	m.Cursor = to
	return m
}

// pixel returns the pointer position an input tracker maps onto scene
// node p.
func (m EditorModel) pixel(scene render.Scene, p grid.Point) session.Pointer {
	if m.Mode == render.ModeWhole {
		return session.Pointer{X: float64(p.X) * m.cellWidth, Y: float64(p.Y) * m.cellWidth}
	}
	f := m.Session.Focus()
	cpd := scene.CellsPerDivision
	divisions := scene.GridSize / cpd
	scale := m.cellWidth * float64(divisions) * 0.5
	// Unwrapped grid node shown at p, relative to the tracker's window.
	gx := f.X*cpd - cpd/2 + p.X
	gy := f.Y*cpd - cpd/2 + p.Y
	return session.Pointer{
		X: (float64(gx) - (float64(f.X)-0.5)*float64(cpd)) * scale,
		Y: (float64(gy) - (float64(f.Y)-0.5)*float64(cpd)) * scale,
	}
}

// homeCursor puts the cursor on the top-left node of the focus division.
func (m EditorModel) homeCursor() EditorModel {
	scene := m.Session.Scene(m.Mode)
	if r, ok := scene.Focus(); ok {
		m.Cursor = grid.Point{X: int(r.X), Y: int(r.Y)}
	}
	m.Pen = false
	return m
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := "Sketch " + m.Path
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")

	scene := m.Session.Scene(m.Mode)
	cv := newCanvas(scene)
	cv.mark(m.Cursor, m.Pen)
	b.WriteString(cv.String())
	b.WriteString("\n")

	node := scene.GridNode(m.Cursor.X, m.Cursor.Y)
	pen := "up"
	if m.Pen {
		pen = "down"
	}
	status := fmt.Sprintf("%s  node %s  focus %s  pen %s", m.Mode, node, m.Session.Focus(), pen)
	if m.Status != "" {
		status += "  · " + m.Status
	}
	b.WriteString(editorStatusStyle.Render(status))
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(editorErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(editorHelpStyle.Render("hjkl/arrows move  yubn diagonals  space pen  t view  f focus  c clear  w write  q quit"))
	b.WriteString("\n")
	return b.String()
}
