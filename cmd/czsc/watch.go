package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yitech/czsc/adapter/feed"
	"github.com/yitech/czsc/model/bar"
	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/pipeline"
)

var (
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#26a641"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05c5c"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#aaaaaa"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "stream a live feed through the analyzer and watch segments confirm",
	RunE:  runWatch,
}

// segmentMsg carries one confirmed segment into the bubbletea Update loop.
type segmentMsg event.SegmentEvent

type watchModel struct {
	symbol, interval string
	ch               chan event.SegmentEvent
	lines            []string
	confirmed        int
	width, height    int
}

func newWatchModel(symbol, interval string, ch chan event.SegmentEvent) watchModel {
	return watchModel{symbol: symbol, interval: interval, ch: ch}
}

func (m watchModel) Init() tea.Cmd { return waitForSegment(m.ch) }

func waitForSegment(ch chan event.SegmentEvent) tea.Cmd {
	return func() tea.Msg { return segmentMsg(<-ch) }
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case segmentMsg:
		m.confirmed++
		if msg.Kind == event.SegmentNew2 {
			m.confirmed++
		}
		m.lines = append(m.lines, renderSegmentLine(event.SegmentEvent(msg)))
		if len(m.lines) > 200 {
			m.lines = m.lines[len(m.lines)-200:]
		}
		return m, waitForSegment(m.ch)
	}
	return m, nil
}

func renderSegmentLine(se event.SegmentEvent) string {
	style := upStyle
	if se.End.Price < se.Start.Price {
		style = downStyle
	}
	if se.Kind == event.SegmentNew2 {
		return style.Render(fmt.Sprintf("%s -> %s -> %s", se.Start, se.Mid, se.End))
	}
	return style.Render(fmt.Sprintf("%s -> %s", se.Start, se.End))
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  %s  segments confirmed: %d", m.symbol, m.interval, m.confirmed)))
	b.WriteByte('\n')

	maxRows := m.height - 3
	if maxRows < 1 {
		maxRows = 10
	}
	visible := m.lines
	if len(visible) > maxRows {
		visible = visible[len(visible)-maxRows:]
	}
	for _, l := range visible {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(footerStyle.Render("[q] quit"))
	return b.String()
}

func runWatch(cmd *cobra.Command, args []string) error {
	addr := viper.GetString("feed")
	if addr == "" {
		return fmt.Errorf("watch: --feed is required")
	}
	symbol := viper.GetString("symbol")
	interval := viper.GetString("interval")

	client := feed.NewClient(addr, log)
	p := pipeline.New()

	ch := make(chan event.SegmentEvent, 16)
	p.SubscribeSegment(func(se event.SegmentEvent) { ch <- se })

	tok, err := client.Subscribe(symbol, interval, func(b bar.Bar) { p.OnBar(b) })
	if err != nil {
		return err
	}
	defer tok.Unsubscribe()

	m := newWatchModel(symbol, interval, ch)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
