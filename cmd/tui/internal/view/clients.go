package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
)

type clientState int

const (
	clientStateBrowse clientState = iota
	clientStateCreate
)

type ClientModel struct {
	CommonModel
	userService *user.Service

	state clientState
	table table.Model
	users []*user.User
	form  *huh.Form

	loading bool
	err     error
	status  string

	formName     string
	formEmail    string
	formPhone    string
	formPassword string
}

func NewClientModel(userSvc *user.Service) ClientModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 30},
		{Title: "Phone", Width: 16},
		{Title: "Since", Width: 12},
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

	return ClientModel{
		userService: userSvc,
		table:       t,
	}
}

func (m ClientModel) Title() string { return "Clients" }
func (m ClientModel) ShortHelp() string {
	if m.state == clientStateCreate {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new client | r: refresh"
}

func (m ClientModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.users = msg.users
		m.err = nil
		m.refreshTable()
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Client created"
		}
		m.state = clientStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == clientStateCreate {
		return m.updateCreate(msg)
	}

	return m.updateBrowse(msg)
}

func (m ClientModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ClientModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formEmail = ""
	m.formPhone = ""
	m.formPassword = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("invalid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone),

			huh.NewInput().
				Key("password").
				Title("Initial password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(func(s string) error {
					if len(s) < 8 {
						return fmt.Errorf("at least 8 characters")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m ClientModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientStateBrowse
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

	return m, m.saveCmd()
}

func (m ClientModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == clientStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Client\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		rows = append(rows, table.Row{
			u.Name,
			u.Email,
			u.Phone,
			FormatDate(u.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadClientsMsg struct {
	users []*user.User
	err   error
}

func (m ClientModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		role := user.RoleClient
		users, err := m.userService.List(ctx, &role)
		return loadClientsMsg{users: users, err: err}
	}
}

type clientSavedMsg struct {
	err error
}

func (m ClientModel) saveCmd() tea.Cmd {
	params := user.CreateParams{
		Name:     strings.TrimSpace(m.formName),
		Email:    strings.TrimSpace(m.formEmail),
		Phone:    strings.TrimSpace(m.formPhone),
		Role:     user.RoleClient,
		Password: m.formPassword,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.userService.Create(ctx, params)
		return clientSavedMsg{err: err}
	}
}
