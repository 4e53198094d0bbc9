// Package ui provides terminal output and prompts for vaerpub.
package ui

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
	UpdateText(text string)
}

// Manager defines the interface for UI operations.
type Manager interface {
	// ShowStep prints a workflow step header.
	ShowStep(text string)
	ShowInfo(message string)
	ShowSuccess(message string)
	ShowWarning(message string)
	ShowError(err error)
	ShowSpinner(text string) Spinner
	PromptConfirm(message string) (bool, error)
	// Pause blocks until the user presses Enter.
	Pause(message string)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	colorEnabled bool
	styles       *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	step    lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	errorSt lipgloss.Style
}

// NewDefaultManager creates a new DefaultManager.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	m := &DefaultManager{colorEnabled: colorEnabled}
	m.initStyles()
	return m
}

// initStyles initializes the lipgloss styles.
func (m *DefaultManager) initStyles() {
	if !m.colorEnabled {
		m.styles = &styles{
			step:    lipgloss.NewStyle(),
			info:    lipgloss.NewStyle(),
			success: lipgloss.NewStyle(),
			warning: lipgloss.NewStyle(),
			errorSt: lipgloss.NewStyle(),
		}
		return
	}

	m.styles = &styles{
		step: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		errorSt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
	}
}

// ShowStep prints a workflow step header.
func (m *DefaultManager) ShowStep(text string) {
	fmt.Println(m.styles.step.Render("==> " + text))
}

// ShowInfo prints an informational message.
func (m *DefaultManager) ShowInfo(message string) {
	fmt.Println(m.styles.info.Render(message))
}

// ShowSuccess prints a success message.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Println(m.styles.success.Render("[OK] " + message))
}

// ShowWarning prints a warning message.
func (m *DefaultManager) ShowWarning(message string) {
	fmt.Println(m.styles.warning.Render("[!] " + message))
}

// ShowError prints an error message.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, m.styles.errorSt.Render("[FEIL] "+err.Error()))
}

// ShowSpinner creates a spinner with the given text.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

// PromptConfirm asks a yes/no question.
func (m *DefaultManager) PromptConfirm(message string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Ja").
				Negative("Nei").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Pause blocks until the user presses Enter.
func (m *DefaultManager) Pause(message string) {
	if message == "" {
		message = "Trykk Enter for aa avslutte..."
	}
	fmt.Print(m.styles.info.Render(message))
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	text    string
	program *tea.Program
	model   *spinnerModel
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for the spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerTextMsg updates the spinner text from outside.
type spinnerTextMsg struct {
	text string
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTextMsg:
		m.text = msg.text
		return m, nil
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(text string) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	model := &spinnerModel{
		spinner: s,
		text:    text,
	}

	return &bubbleSpinner{
		text:  text,
		model: model,
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.program = tea.NewProgram(s.model)
	go func() {
		_, _ = s.program.Run()
	}()
}

func (s *bubbleSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(spinnerQuitMsg{})
		time.Sleep(50 * time.Millisecond)
	}
}

func (s *bubbleSpinner) UpdateText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	if s.program != nil {
		s.program.Send(spinnerTextMsg{text: text})
	}
}

// NonInteractiveManager implements Manager for scripted runs.
// Prompts auto-confirm, the spinner is inert, and Pause returns immediately.
type NonInteractiveManager struct{}

// NewNonInteractiveManager creates a new NonInteractiveManager.
func NewNonInteractiveManager() *NonInteractiveManager {
	return &NonInteractiveManager{}
}

// ShowStep prints a workflow step header.
func (m *NonInteractiveManager) ShowStep(text string) {
	fmt.Println("==> " + text)
}

// ShowInfo prints an informational message.
func (m *NonInteractiveManager) ShowInfo(message string) {
	fmt.Println(message)
}

// ShowSuccess prints a success message.
func (m *NonInteractiveManager) ShowSuccess(message string) {
	fmt.Println("[OK] " + message)
}

// ShowWarning prints a warning message.
func (m *NonInteractiveManager) ShowWarning(message string) {
	fmt.Println("[!] " + message)
}

// ShowError prints an error message.
func (m *NonInteractiveManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "[FEIL] "+err.Error())
}

// ShowSpinner returns an inert spinner.
func (m *NonInteractiveManager) ShowSpinner(text string) Spinner {
	fmt.Println(text)
	return noopSpinner{}
}

// PromptConfirm auto-confirms.
func (m *NonInteractiveManager) PromptConfirm(message string) (bool, error) {
	fmt.Println(message + " [auto-ja]")
	return true, nil
}

// Pause returns immediately.
func (m *NonInteractiveManager) Pause(message string) {}

// noopSpinner is a Spinner that does nothing.
type noopSpinner struct{}

func (noopSpinner) Start()                 {}
func (noopSpinner) Stop()                  {}
func (noopSpinner) UpdateText(text string) {}
