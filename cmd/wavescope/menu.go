package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/cwbudde/wavescope/analysis"
	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/render"
)

// The menu walks file -> action -> result. The filter action inserts a
// text prompt between action and result.
type menuState int

const (
	statePickFile menuState = iota
	statePickAction
	stateFilterInput
	stateViewReport
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	menuStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type fileItem struct {
	name string
	path string
	desc string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.desc }
func (i fileItem) FilterValue() string { return i.name }

type actionID int

const (
	actionAnalyze actionID = iota
	actionFiltered
	actionCharts
	actionCSV
	actionInfo
)

type actionItem struct {
	id   actionID
	name string
	desc string
}

func (i actionItem) Title() string       { return i.name }
func (i actionItem) Description() string { return i.desc }
func (i actionItem) FilterValue() string { return i.name }

// reportMsg carries an action's outcome back into the update loop.
type reportMsg struct {
	title string
	body  string
	err   error
}

type menuModel struct {
	state    menuState
	files    list.Model
	actions  list.Model
	filter   textinput.Model
	report   viewport.Model
	selected fileItem
	title    string
	err      error
}

func runMenu() error {
	m, err := newMenuModel()
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()

	return err
}

func newMenuModel() (menuModel, error) {
	dataDir := config.Get().Paths.DataDir

	items, err := wavItems(dataDir)
	if err != nil {
		return menuModel{}, err
	}

	files := list.New(items, list.NewDefaultDelegate(), 0, 0)
	files.Title = "WAV files in " + dataDir
	files.Styles.Title = menuTitleStyle

	actions := list.New(actionItems(), list.NewDefaultDelegate(), 0, 0)
	actions.Title = "Actions"
	actions.SetFilteringEnabled(false)
	actions.Styles.Title = menuTitleStyle

	filter := textinput.New()
	filter.Placeholder = "lowpass:4000, highpass:100 or bandpass:300-3400"
	filter.CharLimit = 64
	filter.Width = 48

	return menuModel{
		state:   statePickFile,
		files:   files,
		actions: actions,
		filter:  filter,
		report:  viewport.New(0, 0),
	}, nil
}

func wavItems(dir string) ([]list.Item, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []list.Item
	for _, de := range dirents {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".wav") {
			continue
		}

		path := filepath.Join(dir, de.Name())

		var parts []string
		if fi, err := de.Info(); err == nil {
			parts = append(parts, humanize.IBytes(uint64(fi.Size())))
		}
		if info, err := audio.Stat(path); err == nil {
			parts = append(parts,
				info.Duration.Round(10*time.Millisecond).String(),
				fmt.Sprintf("%d Hz", info.SampleRate),
				info.Layout())
		}

		items = append(items, fileItem{
			name: de.Name(),
			path: path,
			desc: strings.Join(parts, "  "),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].(fileItem).name < items[j].(fileItem).name
	})

	return items, nil
}

func actionItems() []list.Item {
	return []list.Item{
		actionItem{actionAnalyze, "Analyze", "Full report: levels, spectral shape, harmonics"},
		actionItem{actionFiltered, "Analyze filtered", "Same report after a Butterworth prefilter"},
		actionItem{actionCharts, "Render charts", "Write the six PNG figures"},
		actionItem{actionCSV, "Export CSV", "Write the report as a CSV file"},
		actionItem{actionInfo, "File info", "Format, duration and tags"},
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.files.SetSize(msg.Width-2, msg.Height-2)
		m.actions.SetSize(msg.Width-2, msg.Height-2)
		m.report.Width = msg.Width - 2
		m.report.Height = msg.Height - 4
		return m, nil

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = statePickAction
			return m, nil
		}
		m.err = nil
		m.title = msg.title
		m.report.SetContent(msg.body)
		m.report.GotoTop()
		m.state = stateViewReport
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case statePickFile:
			if m.files.FilterState() != list.Filtering {
				switch msg.String() {
				case "q", "ctrl+c":
					return m, tea.Quit
				case "enter":
					if item, ok := m.files.SelectedItem().(fileItem); ok {
						m.selected = item
						m.actions.Title = "Actions - " + item.name
						m.state = statePickAction
						return m, nil
					}
				}
			}

		case statePickAction:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.err = nil
				m.state = statePickFile
				return m, nil
			case "enter":
				if item, ok := m.actions.SelectedItem().(actionItem); ok {
					if item.id == actionFiltered {
						m.filter.SetValue("")
						m.filter.Focus()
						m.state = stateFilterInput
						return m, textinput.Blink
					}
					return m, m.runAction(item.id, "")
				}
			}

		case stateFilterInput:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.err = nil
				m.state = statePickAction
				return m, nil
			case "enter":
				return m, m.runAction(actionFiltered, m.filter.Value())
			}

		case stateViewReport:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "backspace":
				m.state = statePickAction
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case statePickFile:
		m.files, cmd = m.files.Update(msg)
	case statePickAction:
		m.actions, cmd = m.actions.Update(msg)
	case stateFilterInput:
		m.filter, cmd = m.filter.Update(msg)
	case stateViewReport:
		m.report, cmd = m.report.Update(msg)
	}

	return m, cmd
}

func (m menuModel) View() string {
	switch m.state {
	case statePickAction:
		v := m.actions.View()
		if m.err != nil {
			v += "\n" + menuErrorStyle.Render("error: "+m.err.Error())
		}
		return v

	case stateFilterInput:
		var b strings.Builder
		b.WriteString(menuTitleStyle.Render("Butterworth prefilter") + "\n\n")
		b.WriteString(m.filter.View() + "\n\n")
		b.WriteString(menuStatusStyle.Render("enter: run  esc: back"))
		if m.err != nil {
			b.WriteString("\n" + menuErrorStyle.Render("error: "+m.err.Error()))
		}
		return b.String()

	case stateViewReport:
		header := menuTitleStyle.Render(m.title)
		footer := menuStatusStyle.Render("up/down: scroll  esc: back  q: quit")
		return header + "\n" + m.report.View() + "\n" + footer

	default:
		return m.files.View()
	}
}

// runAction executes the chosen action off the update loop and reports
// back with a reportMsg.
func (m menuModel) runAction(id actionID, filterSpec string) tea.Cmd {
	item := m.selected

	return func() tea.Msg {
		switch id {
		case actionAnalyze, actionFiltered:
			opts, err := analysisOptions(0, "", filterSpec, 0)
			if err != nil {
				return reportMsg{err: err}
			}

			rep, err := analysis.AnalyzeFile(item.path, opts)
			if err != nil {
				return reportMsg{err: err}
			}

			var buf strings.Builder
			if err := rep.Text(&buf); err != nil {
				return reportMsg{err: err}
			}

			title := item.name
			if filterSpec != "" {
				title += " (" + filterSpec + ")"
			}
			return reportMsg{title: title, body: buf.String()}

		case actionCharts:
			clip, err := audio.Load(item.path)
			if err != nil {
				return reportMsg{err: err}
			}

			paths, err := render.All(nil, clip, config.Get().Paths.FiguresDir)
			if err != nil {
				return reportMsg{err: err}
			}

			var buf strings.Builder
			fmt.Fprintf(&buf, "Rendered %d charts:\n\n", len(paths))
			for _, p := range paths {
				fmt.Fprintf(&buf, "  %s\n", p)
			}
			return reportMsg{title: item.name + " - charts", body: buf.String()}

		case actionCSV:
			opts, err := analysisOptions(0, "", "", 0)
			if err != nil {
				return reportMsg{err: err}
			}

			rep, err := analysis.AnalyzeFile(item.path, opts)
			if err != nil {
				return reportMsg{err: err}
			}

			dir := config.Get().Paths.FiguresDir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return reportMsg{err: err}
			}

			out := filepath.Join(dir, strings.TrimSuffix(item.name, filepath.Ext(item.name))+".csv")
			if err := writeCSV(rep, out); err != nil {
				return reportMsg{err: err}
			}
			return reportMsg{title: item.name + " - csv", body: "Wrote " + out + "\n"}

		case actionInfo:
			var buf strings.Builder
			if err := printInfo(&buf, item.path); err != nil {
				return reportMsg{err: err}
			}
			return reportMsg{title: item.name + " - info", body: buf.String()}
		}

		return reportMsg{err: fmt.Errorf("unknown action %d", id)}
	}
}
