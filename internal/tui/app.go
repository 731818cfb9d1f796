// Package tui provides the interactive terminal front end for greencarbon.
package tui

import (
	"context"
	"strings"

	"github.com/theirongolddev/greencarbon/internal/cli"
	"github.com/theirongolddev/greencarbon/internal/intake"
	"github.com/theirongolddev/greencarbon/internal/report"
	"github.com/theirongolddev/greencarbon/internal/submit"
	"github.com/theirongolddev/greencarbon/internal/tui/components"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// submitDoneMsg carries the event produced by a finished exchange back to the UI loop.
type submitDoneMsg struct {
	Event submit.Event
}

// App is the root Bubble Tea model: the intake form, the submit control, the
// error slot and the result cards, stacked in one scrollable column.
type App struct {
	ctrl     *submit.Controller
	renderer report.Renderer
	endpoint string

	// Intake
	fields *formFields
	input  *intake.State
	form   *huh.Form

	// UI state
	width    int
	height   int
	scroll   int
	spinner  spinner.Model
	viewport viewport.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 100

	minContentHeight = 5
	scrollStep       = 3
)

// NewApp creates the TUI model around a controller. endpoint is shown in the
// status bar and renderer formats the result cards.
func NewApp(ctrl *submit.Controller, renderer report.Renderer, endpoint string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Brand)

	fields := &formFields{}

	return App{
		ctrl:     ctrl,
		renderer: renderer,
		endpoint: endpoint,
		fields:   fields,
		input:    &intake.State{},
		form:     newIntakeForm(fields, 0),
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.form.Init(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form = a.form.WithWidth(a.formWidth())
		return a, nil

	case submitDoneMsg:
		a.ctrl.Finish(msg.Event)
		a.scroll = 0
		return a.resetForm()

	case spinner.TickMsg:
		if !a.ctrl.Outcome().Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-scrollStep)
		case tea.MouseButtonWheelDown:
			a.scrollBy(scrollStep)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Single flight: input is frozen while a request is in flight.
		if a.ctrl.Outcome().Loading() {
			return a, nil
		}

		switch key {
		case "ctrl+s":
			return a.submit()
		case "pgup":
			a.scrollBy(-a.contentHeight() / 2)
			return a, nil
		case "pgdown":
			a.scrollBy(a.contentHeight() / 2)
			return a, nil
		}
	}

	return a.updateForm(msg)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submit()
	case huh.StateAborted:
		return a, tea.Quit
	}

	return a, cmd
}

// submit copies the form into the intake state and starts a request when the
// controller allows it. Validation failures and unreadable files resolve
// immediately into the error slot.
func (a App) submit() (tea.Model, tea.Cmd) {
	if err := a.fields.apply(a.input); err != nil {
		a.ctrl.Reject(submit.FileErrorPrefix + err.Error())
		a.scroll = 0
		return a.resetForm()
	}

	p, ok := a.ctrl.Begin(*a.input)
	if !ok {
		return a.resetForm()
	}

	a.scroll = 0
	return a, tea.Batch(a.spinner.Tick, exchangeCmd(a.ctrl, p))
}

// resetForm rebuilds the form over the same values so they can be edited and
// submitted again.
func (a App) resetForm() (tea.Model, tea.Cmd) {
	a.form = newIntakeForm(a.fields, a.formWidth())
	return a, a.form.Init()
}

// exchangeCmd runs the request off the UI loop.
func exchangeCmd(ctrl *submit.Controller, p intake.Payload) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{Event: ctrl.Exchange(context.Background(), p)}
	}
}

// scrollBy moves the results window, clamped to the rendered body.
func (a *App) scrollBy(n int) {
	maxTop := lipgloss.Height(a.body()) - a.contentHeight()
	a.scroll = min(max(a.scroll+n, 0), max(maxTop, 0))
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) formWidth() int {
	return components.CardInnerWidth(a.contentWidth())
}

func (a App) contentHeight() int {
	h := a.height - 2 // status bar
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := "\n  터미널이 너무 좁아요\n\n  greencarbon needs at least " +
		cli.FormatNumber(minTerminalWidth) + " columns.\n"
	return padHeight(truncateHeight(msg, a.height), a.height)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width

	contentH := a.contentHeight()
	body := lipgloss.PlaceHorizontal(w, lipgloss.Center, a.body())

	vp := a.viewport
	vp.Width = w
	vp.Height = contentH
	vp.SetContent(body)
	vp.SetYOffset(a.scroll)

	hints := "ctrl+s 분석 · enter 다음 · pgup/pgdn 스크롤 · ctrl+c 종료"
	statusBar := components.RenderStatusBar(w, hints, a.endpoint)
	divider := lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", w))

	return lipgloss.JoinVertical(lipgloss.Left, vp.View(), divider, statusBar)
}

// body stacks every section of the page at content width.
func (a App) body() string {
	cw := a.contentWidth()

	outcome := a.ctrl.Outcome()
	cards := a.renderer.Render(outcome.Results())

	sections := []string{
		a.viewHero(cw),
		a.viewIntake(cw),
		a.viewControls(outcome),
	}
	if box := components.ErrorBox(outcome.Message(), cw); box != "" {
		sections = append(sections, box)
	}
	if res := components.ResultSection(cards, cw); res != "" {
		sections = append(sections, res)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) viewHero(cw int) string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.BrandBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	return lipgloss.NewStyle().Width(cw).Padding(1, 1, 0, 1).Render(
		logoStyle.Render("🌿 Green Carbon") +
			subtitleStyle.Render(" · 친환경 소비를 위한 한걸음") + "\n" +
			subtitleStyle.Render("소비 내역을 올리면 월별 탄소 배출량과 친환경 소비 방법을 알려드려요."),
	)
}

func (a App) viewIntake(cw int) string {
	t := theme.Active

	var b strings.Builder
	b.WriteString(a.form.View())

	if blob := a.input.File(); blob != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"📄 " + cli.Truncate(blob.Name, 40) + " (" + cli.FormatBytes(int64(len(blob.Data))) + ")"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Width(cw-2).
		Padding(0, 1).
		Render(b.String())
}

func (a App) viewControls(outcome submit.Outcome) string {
	loading := outcome.Loading()

	// The button reflects the form as typed, before it is copied into the intake state.
	enabled := strings.TrimSpace(a.fields.Text) != "" || strings.TrimSpace(a.fields.FilePath) != ""
	row := " " + components.SubmitButton(loading, enabled)
	if loading {
		row += "  " + a.spinner.View()
	}
	return row
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
