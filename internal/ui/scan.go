// Package ui renders scan progress: a bubbletea view on interactive
// terminals and a plain line printer everywhere else.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	prog "github.com/Andrewsimsd/duplicate-file-finder/internal/progress"
	"github.com/Andrewsimsd/duplicate-file-finder/internal/scanner"
)

// ScanOutcome carries the pipeline result out of the scan goroutine.
type ScanOutcome struct {
	Groups scanner.DuplicateGroups
	Err    error
}

type progressMsg prog.Update

type doneMsg ScanOutcome

// ScanModel is the bubbletea model for a running scan.
type ScanModel struct {
	spinner spinner.Model
	bar     progress.Model
	updates <-chan prog.Update
	done    <-chan ScanOutcome
	latest  *prog.Update
	outcome *ScanOutcome
}

// NewScanModel creates a scan view subscribed to the given reporter.
func NewScanModel(reporter *prog.Reporter, done <-chan ScanOutcome) *ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = stageStyle

	return &ScanModel{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
		updates: reporter.Subscribe(),
		done:    done,
	}
}

// Init starts the spinner and the channel readers.
func (m *ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate(), m.waitForDone())
}

func (m *ScanModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return nil
		}
		return progressMsg(update)
	}
}

func (m *ScanModel) waitForDone() tea.Cmd {
	return func() tea.Msg {
		return doneMsg(<-m.done)
	}
}

// Update handles messages.
func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		update := prog.Update(msg)
		m.latest = &update
		return m, m.waitForUpdate()

	case doneMsg:
		outcome := ScanOutcome(msg)
		m.outcome = &outcome
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the scan view.
func (m *ScanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Duplicate File Finder"))
	b.WriteString("\n\n")

	if m.outcome != nil {
		b.WriteString(doneStyle.Render(prog.Format(m.latest)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(stageStyle.Render(prog.Format(m.latest)))
	b.WriteString("\n")

	if m.latest != nil && m.latest.Total > 0 {
		percent := float64(m.latest.Done) / float64(m.latest.Total)
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString("\n")
	}

	if m.latest != nil {
		b.WriteString(statsStyle.Render(
			fmt.Sprintf("%d files discovered · elapsed %s",
				m.latest.FilesFound,
				prog.FormatDuration(time.Since(m.latest.StartTime)))))
		b.WriteString("\n")
	}

	return b.String()
}

// RunScan drives the progress view until the scan goroutine delivers its
// outcome. If the view is interrupted or fails, the outcome is still
// awaited so the caller always gets the scan result.
func RunScan(reporter *prog.Reporter, done <-chan ScanOutcome) (scanner.DuplicateGroups, error) {
	model := NewScanModel(reporter, done)
	final, err := tea.NewProgram(model).Run()
	if err == nil {
		if m, ok := final.(*ScanModel); ok && m.outcome != nil {
			return m.outcome.Groups, m.outcome.Err
		}
	}

	outcome := <-done
	return outcome.Groups, outcome.Err
}
