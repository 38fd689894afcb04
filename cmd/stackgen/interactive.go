package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type interactiveModel struct {
	err    error // last rejected input line
	report *report
	script *script
	source []string
	input  textinput.Model
	opts   options
	styles styles
}

func newInteractiveModel(opts options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "const double 2.5"
	ti.Prompt = "> "
	ti.Width = 50
	ti.Focus()
	m := &interactiveModel{
		input:  ti,
		opts:   opts,
		styles: colorStyles(),
		script: newScript(),
	}
	m.rebuild()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+w":
			m.opts.wasm = !m.opts.wasm
			m.rebuild()
			return m, nil

		case "ctrl+z":
			if len(m.source) > 0 {
				m.source = m.source[:len(m.source)-1]
				m.err = nil
				m.reparse()
			}
			return m, nil

		case "enter":
			line := m.input.Value()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			if err := m.script.add(len(m.source)+1, line); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.source = append(m.source, line)
			m.input.SetValue("")
			m.rebuild()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reparse rebuilds the script from the accepted source lines.
func (m *interactiveModel) reparse() {
	m.script = newScript()
	for i, line := range m.source {
		// Every line already parsed once.
		_ = m.script.add(i+1, line)
	}
	m.rebuild()
}

func (m *interactiveModel) rebuild() {
	m.report = assemble(context.Background(), m.script, m.opts)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("stackgen"))
	b.WriteString("\n\n")
	for i, line := range m.source {
		b.WriteString(m.styles.offset.Render(fmt.Sprintf("%3d  ", i+1)))
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.err.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.report.render(m.styles))
	b.WriteString("\n")
	wasm := "off"
	if m.opts.wasm {
		wasm = "on"
	}
	b.WriteString(m.styles.help.Render("enter add • ctrl+z undo • ctrl+w wasm (" + wasm + ") • esc quit"))
	return b.String()
}

func runInteractive(opts options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
