// Package tui provides the interactive Bubble Tea budget planner.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/mbudget/internal/cli"
	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/model"
	"github.com/theirongolddev/mbudget/internal/pipeline"
	"github.com/theirongolddev/mbudget/internal/report"
	"github.com/theirongolddev/mbudget/internal/tui/components"
	"github.com/theirongolddev/mbudget/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ExportSuccess is flashed after a PDF is written.
const ExportSuccess = "PDF successfully downloaded!"

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	formCardWidth    = 56
	labelWidth       = 28
	inputWidth       = 16
	minContentHeight = 5

	flashDuration = 3 * time.Second
)

// Options seeds the planner.
type Options struct {
	Table        config.RatioTable
	Inputs       model.Inputs
	Organization string
	OutputDir    string
	IncludeChart bool
	// NeedSetup opens the setup wizard before the form.
	NeedSetup bool
	Now       func() time.Time
}

type exportDoneMsg struct {
	path string
	err  error
}

type clearFlashMsg struct {
	seq int
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Form
	inputs []textinput.Model
	focus  int

	// Derived on every change
	in       model.Inputs
	plan     model.Plan
	warnings []model.Warning

	// UI state
	width    int
	height   int
	showHelp bool
	flash    components.Flash
	flashSeq int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if len(opts.Table.Bands) == 0 {
		opts.Table = config.DefaultRatioTable
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := App{
		opts:      opts,
		needSetup: opts.NeedSetup,
	}
	a.resetInputs(opts.Inputs)

	if a.needSetup {
		a.setupVals = setupValuesFrom(loadConfigOrDefault())
		a.setupForm = newSetupForm(&a.setupVals)
	}
	return a
}

func newFieldInput(f pipeline.Field, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = inputWidth
	ti.CharLimit = 64
	if f.Text {
		ti.Placeholder = report.NotSpecified
	} else {
		ti.Placeholder = "0"
		ti.CharLimit = 20
	}
	ti.SetValue(value)
	return ti
}

// resetInputs rebuilds the form from in. Zero numbers start blank so typing
// replaces them.
func (a *App) resetInputs(in model.Inputs) {
	a.inputs = make([]textinput.Model, len(pipeline.Fields))
	for i, f := range pipeline.Fields {
		value := pipeline.FieldValue(in, f.Key)
		if !f.Text && value == "0" {
			value = ""
		}
		a.inputs[i] = newFieldInput(f, value)
	}
	a.in = in
	a.focus = 0
	a.inputs[0].Focus()
	a.recompute()
}

func (a *App) recompute() {
	a.plan = pipeline.Compute(a.in, a.opts.Table)
	a.warnings = pipeline.Validate(a.in, a.opts.Table)
}

func (a *App) setFocus(i int) {
	n := len(a.inputs)
	i = (i%n + n) % n
	a.inputs[a.focus].Blur()
	a.focus = i
	a.inputs[a.focus].Focus()
}

func (a App) document() report.Document {
	return report.Build(a.plan, report.Options{
		Organization: a.opts.Organization,
		IncludeChart: a.opts.IncludeChart,
		Now:          a.opts.Now,
	})
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.Init()
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "f1" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "esc":
			return a, tea.Quit
		case "tab", "down", "enter":
			a.setFocus(a.focus + 1)
			return a, textinput.Blink
		case "shift+tab", "up":
			a.setFocus(a.focus - 1)
			return a, textinput.Blink
		case "ctrl+s":
			return a, exportCmd(a.document(), a.opts.OutputDir)
		case "ctrl+r":
			a.resetInputs(a.opts.Inputs)
			return a, nil
		}

		var cmd tea.Cmd
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		pipeline.SetField(&a.in, pipeline.Fields[a.focus].Key, a.inputs[a.focus].Value())
		a.recompute()
		return a, cmd

	case exportDoneMsg:
		a.flashSeq++
		if msg.err != nil {
			a.flash = components.Flash{Text: "Export failed: " + msg.err.Error(), Error: true}
		} else {
			a.flash = components.Flash{Text: ExportSuccess + " " + msg.path}
		}
		seq := a.flashSeq
		return a, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return clearFlashMsg{seq: seq}
		})

	case clearFlashMsg:
		// A newer export restarts the timer.
		if msg.seq == a.flashSeq {
			a.flash = components.Flash{}
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, textinput.Blink
	}

	return a, cmd
}

// applySetup saves the wizard answers and carries them into the open form.
func (a *App) applySetup() {
	cfg, err := setupValuesToConfig(loadConfigOrDefault(), a.setupVals)
	if err == nil {
		err = config.Save(cfg)
	}
	if err != nil {
		a.flashSeq++
		a.flash = components.Flash{Text: "Could not save config: " + err.Error(), Error: true}
	}

	theme.SetActive(cfg.Appearance.Theme)
	a.opts.Organization = cfg.Organization()
	a.opts.OutputDir = cfg.Report.OutputDir
	a.opts.Inputs.CurrentYear = cfg.PlanningYear()
	a.opts.Inputs.TVFactor = cfg.General.TVFactor
	a.resetInputs(a.opts.Inputs)
}

func exportCmd(doc report.Document, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := report.WriteFile(dir, doc, report.FormatPDF)
		return exportDoneMsg{path: path, err: err}
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  mbudget needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"tab ↓ enter", "Next field"},
		{"shift+tab ↑", "Previous field"},
		{"ctrl+s", "Export PDF report"},
		{"ctrl+r", "Reset the form"},
		{"f1", "Toggle this help"},
		{"esc ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, kb := range bindings {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-14s", kb.key)))
		b.WriteString(descStyle.Render(kb.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("Ratio table: " + a.opts.Table.Name))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height
	doc := a.document()

	// 1. Header: title left, organization right
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	orgStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	left := titleStyle.Render(" ◈ " + doc.Title)
	right := orgStyle.Render(doc.Organization + " ")
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	header := left + orgStyle.Render(strings.Repeat(" ", gap)) + right

	// 2. Status bar
	statusBar := components.RenderStatusBar(w,
		"[tab]next  [ctrl+s]export pdf  [ctrl+r]reset  [f1]help  [esc]quit", a.flash)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Form beside results, or stacked when narrow
	var content string
	if a.isCompactLayout() {
		content = lipgloss.JoinVertical(lipgloss.Left,
			a.renderForm(cw),
			a.renderResults(doc, cw))
	} else {
		content = components.CardRow([]string{
			a.renderForm(formCardWidth),
			a.renderResults(doc, cw-formCardWidth),
		})
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderForm(width int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	lines := make([]string, 0, len(a.inputs))
	for i, f := range pipeline.Fields {
		label := fmt.Sprintf("  %-*s", labelWidth, pipeline.FieldLabel(f, a.plan.NextYear))
		style := labelStyle
		if i == a.focus {
			label = "› " + label[2:]
			style = focusStyle
		}
		lines = append(lines, style.Render(label)+a.inputs[i].View())
	}
	return components.ContentCard("Inputs", strings.Join(lines, "\n"), width)
}

func (a App) renderResults(doc report.Document, width int) string {
	t := theme.Active
	p := a.plan
	inner := components.CardInnerWidth(width)

	headline := components.ContentCard("",
		lipgloss.NewStyle().Foreground(t.BlueBright).Background(t.Surface).Bold(true).Render(doc.Headline),
		width)

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "SOM Growth", Value: cli.FormatPercent(p.GrowthPct), Highlight: true},
		{Label: "Market Type", Value: string(p.MarketType), Highlight: p.MarketType == model.MarketContender},
		{Label: "Selected Ratio", Value: cli.FormatFixed(p.Ratio, 2)},
		{Label: fmt.Sprintf("Expected SOV %d", p.NextYear), Value: cli.FormatPercent(p.ExpectedSOV), Highlight: true},
	}, width)

	grpBody := components.HBarChart([]components.Bar{
		{Label: cli.OrDefault(p.Inputs.Brand, "Brand"), Value: p.NextYearBrandGRP, Color: t.Accent},
		{Label: "Competitors", Value: p.NextCompGRP, Color: t.TextMuted},
	}, inner)
	grpBody += "\n" + components.ShareBar("Share of voice", p.ExpectedSOV/100, 16, inner-24)
	if rows := sectionRows(doc, "GRP Analysis"); len(rows) > 0 {
		grpBody += "\n" + components.KeyValueBody(rows, inner)
	}
	grp := components.ContentCard(fmt.Sprintf("GRP %d", p.NextYear), grpBody, width)

	budget := components.ContentCard("Budget",
		components.KeyValueBody(sectionRows(doc, "Financial Impact"), inner), width)

	parts := []string{headline, metrics, grp, budget}

	if len(a.warnings) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		var wb strings.Builder
		for i, w := range a.warnings {
			if i > 0 {
				wb.WriteString("\n")
			}
			wb.WriteString(warnStyle.Render("! " + w.String()))
		}
		parts = append(parts, components.ContentCard("Warnings", wb.String(), width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func sectionRows(doc report.Document, title string) []components.KV {
	for _, s := range doc.Sections {
		if s.Title != title {
			continue
		}
		rows := make([]components.KV, len(s.Rows))
		for i, r := range s.Rows {
			rows[i] = components.KV{Label: r.Label, Value: r.Value}
		}
		return rows
	}
	return nil
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

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
