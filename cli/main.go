package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#30d158"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a84ff"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff453a"))

	hintStyle = lipgloss.NewStyle().
			Faint(true)
)

type chatLine struct {
	role string
	text string
}

// Model defines the application state
type Model struct {
	client    *ApiClient
	session   *Session
	input     textinput.Model
	spinner   spinner.Model
	lines     []chatLine
	waiting   bool
	err       error
}

type turnMsg struct {
	result *TurnResult
	err    error
}

type confirmMsg struct {
	order *Order
	err   error
}

func newModel(client *ApiClient, sess *Session) Model {
	input := textinput.New()
	input.Placeholder = "dos limonadas..."
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:  client,
		session: sess,
		input:   input,
		spinner: sp,
		lines:   []chatLine{{role: "assistant", text: sess.Greeting}},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) sendTurn(message string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.Chat(m.session.ID, message)
		return turnMsg{result: result, err: err}
	}
}

func (m Model) sendConfirm() tea.Cmd {
	return func() tea.Msg {
		order, err := m.client.Confirm(m.session.ID)
		return confirmMsg{order: order, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.lines = append(m.lines, chatLine{role: "user", text: text})
			m.waiting = true
			if text == "/enviar" || text == "/send" {
				return m, tea.Batch(m.spinner.Tick, m.sendConfirm())
			}
			return m, tea.Batch(m.spinner.Tick, m.sendTurn(text))
		}

	case turnMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.lines = append(m.lines, chatLine{role: "assistant", text: msg.result.AssistantMessage})
		if msg.result.RequireConfirmation {
			m.lines = append(m.lines, chatLine{role: "hint", text: "Escribí /enviar para confirmar el pedido"})
		}
		return m, nil

	case confirmMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.lines = append(m.lines, chatLine{
			role: "assistant",
			text: fmt.Sprintf("Pedido #%d enviado a cocina. ¡Gracias!", msg.order.ID),
		})
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Parolaccia — mesa %s", m.session.MesaID)))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		switch line.role {
		case "assistant":
			b.WriteString(assistantStyle.Render("mozo: " + line.text))
		case "user":
			b.WriteString(userStyle.Render("vos:  " + line.text))
		default:
			b.WriteString(hintStyle.Render(line.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString(m.spinner.View())
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter para enviar · esc para salir"))
	return docStyle.Render(b.String())
}

func main() {
	mesa := flag.String("mesa", "1", "table id")
	comensales := flag.Int("comensales", 2, "party size")
	flag.Parse()

	client := NewApiClient()
	sess, err := client.CreateSession(*mesa, *comensales)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open session: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(newModel(client, sess)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
