package view

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/voucher"
)

type invoiceState int

const (
	invoiceStateBrowse invoiceState = iota
	invoiceStatePayment
	invoiceStateCancel
)

// statusFilters are the persisted statuses the browse view can cycle
// through. Derived interim statuses are recomputed on load, so the
// "delayed" entry only matches invoices the refresh scheduler has
// already tagged.
var statusFilters = []*invoice.Status{
	nil,
	statusPtr(invoice.StatusPending),
	statusPtr(invoice.StatusDelayed),
	statusPtr(invoice.StatusPaid),
	statusPtr(invoice.StatusCancelled),
}

func statusPtr(s invoice.Status) *invoice.Status { return &s }

type InvoiceModel struct {
	CommonModel
	invoiceService *invoice.Service
	userService    *user.Service
	voucherService *voucher.Service

	state invoiceState
	table table.Model
	invs  []*invoice.Invoice
	names map[uuid.UUID]string
	form  *huh.Form

	statusFilterIdx int
	filter          invoice.ListFilter

	loading bool
	err     error
	status  string

	// Payment form bindings
	formAmount  string
	formMethod  string
	formVoucher string

	formConfirm bool
}

func NewInvoiceModel(invSvc *invoice.Service, userSvc *user.Service, voucherSvc *voucher.Service) InvoiceModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Client", Width: 20},
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Remaining", Width: 14},
		{Title: "Due/Late", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return InvoiceModel{
		invoiceService: invSvc,
		userService:    userSvc,
		voucherService: voucherSvc,
		table:          t,
		filter:         invoice.ListFilter{},
		names:          map[uuid.UUID]string{},
	}
}

func (m InvoiceModel) Title() string { return "Invoices" }
func (m InvoiceModel) ShortHelp() string {
	switch m.state {
	case invoiceStatePayment:
		return "Navigate form | Esc: cancel"
	case invoiceStateCancel:
		return "Confirm cancellation | Esc: back"
	}
	return "Esc: back | p: register payment | f: apply late fee | c: cancel invoice | s: status filter | r: refresh"
}

func (m InvoiceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.invs = msg.invs
		m.names = msg.names
		m.err = nil
		m.refreshTable()
		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.done
		}
		m.state = invoiceStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoiceStateBrowse:
		return m.updateBrowse(msg)
	case invoiceStatePayment, invoiceStateCancel:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m InvoiceModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invs) {
		return nil
	}

	return m.invs[idx]
}

func (m InvoiceModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.filter.Status = statusFilters[m.statusFilterIdx]
			return m, m.loadCmd()
		case "p":
			return m.enterPaymentMode()
		case "c":
			return m.enterCancelMode()
		case "f":
			inv := m.selected()
			if inv == nil {
				return m, nil
			}
			return m, m.applyLateFeeCmd(inv.ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InvoiceModel) enterPaymentMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	if inv.Status.Terminal() {
		m.status = "Invoice is already settled or cancelled"
		return m, nil
	}

	m.formAmount = ""
	m.formMethod = "cash"
	m.formVoucher = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount (remaining %s)", FormatMoney(inv.RemainingAmount))).
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("invalid amount")
					}
					if !d.IsPositive() {
						return fmt.Errorf("amount must be positive")
					}
					if d.GreaterThan(inv.RemainingAmount) {
						return fmt.Errorf("exceeds remaining balance")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("method").
				Title("Method").
				Options(
					huh.NewOption("Cash", "cash"),
					huh.NewOption("Transfer", "transfer"),
					huh.NewOption("Card", "card"),
				).
				Value(&m.formMethod),

			huh.NewInput().
				Key("voucher").
				Title("Voucher file (optional)").
				Placeholder("/path/to/receipt.jpg").
				Value(&m.formVoucher),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = invoiceStatePayment
	m.table.Blur()
	return m, m.form.Init()
}

func (m InvoiceModel) enterCancelMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	if inv.Status.Terminal() {
		m.status = "Invoice is already settled or cancelled"
		return m, nil
	}

	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Cancel invoice %s?", inv.Number)).
				Affirmative("Cancel it").
				Negative("Keep it").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = invoiceStateCancel
	m.table.Blur()
	return m, m.form.Init()
}

func (m InvoiceModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoiceStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	inv := m.selected()
	if inv == nil {
		m.state = invoiceStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	if m.state == invoiceStateCancel {
		if !m.formConfirm {
			m.state = invoiceStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}

		return m, m.cancelCmd(inv.ID)
	}

	return m, m.registerPaymentCmd(inv.ID)
}

func (m InvoiceModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	filterLabel := "All"
	if s := statusFilters[m.statusFilterIdx]; s != nil {
		filterLabel = string(*s)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(filterLabel))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		title := "Register Payment"
		if m.state == invoiceStateCancel {
			title = "Cancel Invoice"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoiceModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invs))
	for _, inv := range m.invs {
		res := invoice.ComputeStatus(inv)

		due := ""
		switch {
		case res.DaysLate != nil:
			due = fmt.Sprintf("%d late", *res.DaysLate)
		case res.DaysRemaining != nil:
			due = fmt.Sprintf("%d", *res.DaysRemaining)
		}

		name := m.names[inv.ClientID]
		if name == "" {
			name = inv.ClientID.String()[:8]
		}

		rows = append(rows, table.Row{
			inv.Number,
			name,
			FormatDate(inv.Date),
			string(inv.PaymentType),
			RenderStatus(res.Status),
			FormatMoney(inv.RemainingAmount),
			due,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invs  []*invoice.Invoice
	names map[uuid.UUID]string
	err   error
}

func (m InvoiceModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invs, err := m.invoiceService.List(ctx, filter)
		if err != nil {
			return loadInvoicesMsg{err: err}
		}

		clients, err := m.userService.List(ctx, nil)
		if err != nil {
			return loadInvoicesMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(clients))
		for _, c := range clients {
			names[c.ID] = c.Name
		}

		return loadInvoicesMsg{invs: invs, names: names}
	}
}

type invoiceActionMsg struct {
	done string
	err  error
}

func (m InvoiceModel) registerPaymentCmd(id uuid.UUID) tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	method := m.formMethod
	voucherPath := strings.TrimSpace(m.formVoucher)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		params := invoice.PaymentParams{
			Date:   time.Now(),
			Amount: amount,
			Method: &method,
		}

		if voucherPath != "" {
			f, err := os.Open(voucherPath)
			if err != nil {
				return invoiceActionMsg{err: err}
			}
			defer f.Close()

			name, err := m.voucherService.Save(f, voucherPath)
			if err != nil {
				return invoiceActionMsg{err: err}
			}

			params.Attachment = &name
		}

		if _, err := m.invoiceService.RegisterPayment(ctx, id, params); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{done: "Payment registered"}
	}
}

func (m InvoiceModel) cancelCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.invoiceService.Cancel(ctx, id); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{done: "Invoice cancelled"}
	}
}

func (m InvoiceModel) applyLateFeeCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invoiceService.ApplyLateFee(ctx, id, nil)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		pct := 0
		if inv.LateFeePercentage != nil {
			pct = *inv.LateFeePercentage
		}

		return invoiceActionMsg{done: fmt.Sprintf("Late fee applied (%d%%)", pct)}
	}
}
