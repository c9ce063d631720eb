package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/transform"

	"github.com/wippyai/utfstream"
	"github.com/wippyai/utfstream/scheme"
	"github.com/wippyai/utfstream/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	formStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("#98FB98"))

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxShownUnits caps each unit row so long input stays on one screen line.
const maxShownUnits = 24

var schemes = []scheme.Scheme{
	scheme.UTF8,
	scheme.UTF16LE,
	scheme.UTF16BE,
	scheme.UTF32LE,
	scheme.UTF32BE,
}

// report is everything the TUI shows for one input string.
type report struct {
	err        error
	utf8       []byte
	utf16      []uint16
	utf32      []rune
	encoded    []byte
	points     int
	wellFormed bool
}

func describe(s string, target scheme.Scheme, bom bool) report {
	r := report{utf8: []byte(s)}
	var ok16, ok32 bool
	r.utf16, ok16 = transcoder.Convert[byte, uint16](r.utf8)
	r.utf32, ok32 = transcoder.Convert[byte, rune](r.utf8)
	r.wellFormed = ok16 && ok32
	r.points = utfstream.Length(r.utf8)

	var opts []scheme.Option
	if bom {
		opts = append(opts, scheme.WriteBOM())
	}
	r.encoded, _, r.err = transform.Bytes(scheme.NewTransformer(scheme.UTF8, target, opts...), r.utf8)
	return r
}

func formatUnits[T utfstream.CodeUnit](units []T) string {
	if len(units) == 0 {
		return helpStyle.Render("(empty)")
	}
	width := 2 * utfstream.FormOf[T]().UnitSize()
	if width > 6 {
		width = 6
	}
	shown := units
	if len(shown) > maxShownUnits {
		shown = shown[:maxShownUnits]
	}
	parts := make([]string, len(shown))
	for i, u := range shown {
		parts[i] = fmt.Sprintf("%0*X", width, uint32(u))
	}
	out := strings.Join(parts, " ")
	if len(units) > maxShownUnits {
		out += fmt.Sprintf(" … (+%d)", len(units)-maxShownUnits)
	}
	return unitStyle.Render(out)
}

type interactiveModel struct {
	input    textinput.Model
	selected int
	bom      bool
	report   report
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type some text"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	m := &interactiveModel{input: ti}
	m.refresh()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) refresh() {
	m.report = describe(m.input.Value(), schemes[m.selected], m.bom)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.selected = (m.selected + 1) % len(schemes)
			m.refresh()
			return m, nil
		case "shift+tab":
			m.selected = (m.selected + len(schemes) - 1) % len(schemes)
			m.refresh()
			return m, nil
		case "ctrl+b":
			m.bom = !m.bom
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("UTF Transcoder"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	r := m.report
	b.WriteString(formStyle.Render("UTF-8"))
	b.WriteString(formatUnits(r.utf8))
	b.WriteString("\n")
	b.WriteString(formStyle.Render("UTF-16"))
	b.WriteString(formatUnits(r.utf16))
	b.WriteString("\n")
	b.WriteString(formStyle.Render("UTF-32"))
	b.WriteString(formatUnits(r.utf32))
	b.WriteString("\n\n")

	for i, s := range schemes {
		if i == m.selected {
			b.WriteString(selectedStyle.Render(s.String()))
		} else {
			b.WriteString(s.String())
		}
		b.WriteString(" ")
	}
	if m.bom {
		b.WriteString(helpStyle.Render("+bom"))
	}
	b.WriteString("\n")
	if r.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", r.err)))
	} else {
		b.WriteString(formatUnits(r.encoded))
	}
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%d code points, %d bytes, %d UTF-16 units", r.points, len(r.utf8), len(r.utf16))
	if r.wellFormed {
		b.WriteString(resultStyle.Render(summary))
	} else {
		b.WriteString(errorStyle.Render(summary + ", ill-formed"))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab/shift+tab scheme • ctrl+b toggle BOM • esc quit"))

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
