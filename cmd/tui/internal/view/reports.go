package view

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/report"
)

type reportState int

const (
	reportStatePick reportState = iota
	reportStateShow
)

type ReportModel struct {
	CommonModel
	reportService *report.Service

	state  reportState
	picker TimeframePicker

	summary *report.Summary
	rows    []report.Delinquency
	table   table.Model

	loading bool
	err     error
}

func NewReportModel(reportSvc *report.Service) ReportModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Type", Width: 8},
		{Title: "Days Late", Width: 10},
		{Title: "Remaining", Width: 14},
		{Title: "Late Fee", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	return ReportModel{
		reportService: reportSvc,
		picker:        NewTimeframePicker(),
		table:         t,
	}
}

func (m ReportModel) Title() string { return "Reports" }
func (m ReportModel) ShortHelp() string {
	if m.state == reportStatePick {
		return "Select timeframe | Esc: back"
	}
	return "Esc: choose timeframe | q: back"
}

func (m ReportModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.loading = true
		m.state = reportStateShow
		return m, m.loadCmd(msg)

	case loadReportMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.rows = msg.rows
		m.err = nil
		m.refreshTable()
		return m, nil

	case tea.KeyMsg:
		if m.state == reportStatePick {
			if msg.Type == tea.KeyEsc && m.picker.IsSelecting() {
				return m, Back
			}

			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc":
			m.state = reportStatePick
			m.picker.Reset()
			return m, nil
		case "q":
			return m, Back
		}
	}

	if m.state == reportStateShow {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m ReportModel) View() string {
	if m.state == reportStatePick {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Crunching the numbers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render("No data")
	}

	statuses := make([]invoice.Status, 0, len(m.summary.ByStatus))
	for s := range m.summary.ByStatus {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	byStatus := ""
	for _, s := range statuses {
		byStatus += fmt.Sprintf("  %s: %d\n", RenderStatus(s), m.summary.ByStatus[s])
	}

	head := fmt.Sprintf(
		"Invoices: %d\n%s\nBilled:      %s\nOutstanding: %s\nLate fees:   %s\n",
		m.summary.TotalInvoices,
		byStatus,
		FormatMoney(m.summary.TotalBilled),
		FormatMoney(m.summary.Outstanding),
		FormatMoney(m.summary.AccruedLateFees),
	)

	tableView := ""
	if len(m.rows) > 0 {
		tableView = "\nDelinquent invoices:\n" + lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(head + tableView)
}

func (m *ReportModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, d := range m.rows {
		rows = append(rows, table.Row{
			d.Number,
			string(d.PaymentType),
			fmt.Sprintf("%d", d.DaysLate),
			FormatMoney(d.Remaining),
			FormatMoney(d.LateFeeAmount),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadReportMsg struct {
	summary *report.Summary
	rows    []report.Delinquency
	err     error
}

func (m ReportModel) loadCmd(sel TimeframeSelectedMsg) tea.Cmd {
	var start, end *time.Time
	if !sel.All {
		s, e := sel.Start, sel.End
		start, end = &s, &e
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.SummarizeBetween(ctx, start, end)
		if err != nil {
			return loadReportMsg{err: err}
		}

		rows, err := m.reportService.DelinquenciesBetween(ctx, start, end)
		if err != nil {
			return loadReportMsg{err: err}
		}

		return loadReportMsg{summary: summary, rows: rows}
	}
}
