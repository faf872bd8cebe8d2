package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/codec"
	"github.com/wippyai/bebytes/plan"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	orderStyle = lipgloss.NewStyle().
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

func newInspectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.bb>",
		Short: "Explore record layouts and decode bytes interactively",
		Long: `Pick a record, view its layout plan, type bytes in hex and decode them
in either byte order. Prints the plan when stdout is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				o.log.Debug("stdout is not a terminal, printing plan")
				printPlan(cmd.OutOrStdout(), p.Records, true)
				return nil
			}
			prog := tea.NewProgram(newInspectModel(args[0], p), tea.WithAltScreen())
			_, err = prog.Run()
			return err
		},
	}
}

type inspectState int

const (
	stateSelectRecord inspectState = iota
	stateInputBytes
	stateShowResult
)

type inspectModel struct {
	err      error
	plan     *plan.Plan
	filename string
	result   string
	input    textinput.Model
	selected int
	order    bebytes.Endian
	state    inspectState
}

type decodedMsg struct {
	err    error
	result string
}

func newInspectModel(filename string, p *plan.Plan) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "01 02 0a ff"
	ti.Prompt = "hex: "
	ti.Width = 60
	return &inspectModel{
		plan:     p,
		filename: filename,
		input:    ti,
		state:    stateSelectRecord,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) record() *plan.Record {
	return m.plan.Records[m.selected]
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputBytes {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectRecord && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelectRecord && m.selected < len(m.plan.Records)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelectRecord:
				if len(m.plan.Records) == 0 {
					return m, nil
				}
				m.order = m.record().Endian
				m.state = stateInputBytes
				m.input.Focus()
				return m, textinput.Blink

			case stateInputBytes:
				return m, m.decode

			case stateShowResult:
				m.state = stateInputBytes
				m.result = ""
				m.err = nil
				m.input.Focus()
				return m, nil
			}

		case "tab":
			if m.state == stateInputBytes {
				if m.order == bebytes.BigEndian {
					m.order = bebytes.LittleEndian
				} else {
					m.order = bebytes.BigEndian
				}
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputBytes:
				m.state = stateSelectRecord
				m.input.Blur()
				m.input.SetValue("")
			case stateShowResult:
				m.state = stateInputBytes
				m.result = ""
				m.err = nil
				m.input.Focus()
			}
			return m, nil
		}

	case decodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		m.input.Blur()
		return m, nil
	}

	if m.state == stateInputBytes {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// decode runs the interpreter over the typed bytes in the chosen order.
func (m *inspectModel) decode() tea.Msg {
	r := m.record()
	data, err := codec.ParseHex(m.input.Value())
	if err != nil {
		return decodedMsg{err: err}
	}
	v, n, err := codec.Decode(r, data, m.order)
	if err != nil {
		codec.Logger().Debug("inspect decode failed",
			zap.String("record", r.Name), zap.Stringer("order", m.order), zap.Error(err))
		return decodedMsg{err: err}
	}
	out := codec.Format(r, v)
	if n < len(data) {
		out += fmt.Sprintf("\n%d trailing byte(s) not consumed", len(data)-n)
	}
	return decodedMsg{result: fmt.Sprintf("consumed %d of %d byte(s)\n\n%s", n, len(data), out)}
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bebytes inspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if len(m.plan.Records) == 0 {
		b.WriteString("No records in description.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectRecord:
		b.WriteString("Select a record:\n\n")
		for i, r := range m.plan.Records {
			line := r.Summary()
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + recordStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputBytes:
		r := m.record()
		b.WriteString(planTable(r))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Decode %s as %s\n\n",
			recordStyle.Render(r.Name), orderStyle.Render(m.order.String())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab byte order • enter decode • esc back"))

	case stateShowResult:
		r := m.record()
		b.WriteString(fmt.Sprintf("%s (%s):\n\n",
			recordStyle.Render(r.Name), orderStyle.Render(m.order.String())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • esc back • q quit"))
	}

	return b.String()
}
