package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/Elmerluis0129/WanMarKay-sub000/cmd/tui/internal/view"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/config"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/database"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	invoiceStore "github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice/store"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/report"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
	userStore "github.com/Elmerluis0129/WanMarKay-sub000/internal/user/store"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/voucher"
)

type model struct {
	invoiceService *invoice.Service
	userService    *user.Service
	reportService  *report.Service
	voucherService *voucher.Service

	currentView View

	invoiceView view.InvoiceModel
	clientView  view.ClientModel
	reportView  view.ReportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewInvoice View = 1
	ViewClient  View = 2
	ViewReport  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	voucherSvc, err := voucher.NewService(cfg.Vouchers.Dir)
	if err != nil {
		slog.Error("failed to prepare voucher storage", "error", err)
		os.Exit(1)
	}

	invoiceSvc := invoice.NewService(invoiceStore.New(db))
	userSvc := user.NewService(userStore.New(db))
	reportSvc := report.NewService(invoiceSvc)

	return model{
		invoiceService: invoiceSvc,
		userService:    userSvc,
		reportService:  reportSvc,
		voucherService: voucherSvc,
		currentView:    ViewMenu,
		invoiceView:    view.NewInvoiceModel(invoiceSvc, userSvc, voucherSvc),
		clientView:     view.NewClientModel(userSvc),
		reportView:     view.NewReportModel(reportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInvoice
				m.invoiceView = view.NewInvoiceModel(m.invoiceService, m.userService, m.voucherService)

				return m, m.invoiceView.Init()
			case "2":
				m.currentView = ViewClient
				m.clientView = view.NewClientModel(m.userService)

				return m, m.clientView.Init()
			case "3":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.reportService)

				return m, m.reportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInvoice:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceModel)
	case ViewClient:
		var newModel tea.Model
		newModel, cmd = m.clientView.Update(msg)
		m.clientView = newModel.(view.ClientModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"WanMarKay Admin\n\n" +
				"1. Invoices\n" +
				"2. Clients\n" +
				"3. Reports\n\n" +
				"q. Quit",
		)
	case ViewInvoice:
		return m.invoiceView.View()
	case ViewClient:
		return m.clientView.View()
	case ViewReport:
		return m.reportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
