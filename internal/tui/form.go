package tui

import (
	"fmt"
	"strings"

	"fjacquet/doc-extract-csv/internal/apperror"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/models"
	"fjacquet/doc-extract-csv/internal/validation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	msgSaved         = "Data saved successfully to CSV file."
	msgMissingFields = "Please fill out all required fields."
)

// field order matches models.Fields and the store columns
var fieldPrompts = []string{
	"Enter the name of the company:",
	"Enter the product brand:",
	"Enter the product description:",
	"Enter the production location:",
	"Enter the geographical market:",
	"Enter the production volume:",
	"Enter the annual revenue:",
}

type statusKind int

const (
	statusNone statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// FormModel edits the seven record fields and saves or downloads the store.
type FormModel struct {
	session *Session
	inputs  []textinput.Model
	focused int
	busy    bool
	status  string
	kind    statusKind
	detail  string
}

func NewFormModel(session *Session) *FormModel {
	inputs := make([]textinput.Model, len(fieldPrompts))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = "> "
	}
	inputs[0].Focus()

	return &FormModel{session: session, inputs: inputs}
}

// Fields returns the current input values.
func (m *FormModel) Fields() models.Fields {
	return models.Fields{
		CompanyName:        m.inputs[0].Value(),
		ProductBrand:       m.inputs[1].Value(),
		ProductDescription: m.inputs[2].Value(),
		ProductionLocation: m.inputs[3].Value(),
		GeographicalArea:   m.inputs[4].Value(),
		ProductionVolume:   m.inputs[5].Value(),
		AnnualRevenue:      m.inputs[6].Value(),
	}
}

// SetField sets the value of the i-th field.
func (m *FormModel) SetField(i int, value string) {
	m.inputs[i].SetValue(value)
}

// Status returns the last operator message.
func (m *FormModel) Status() string {
	return m.status
}

func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SaveCompleteMsg:
		m.busy = false
		if msg.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("Failed to save data: %v", msg.Err), "")
			return nil
		}
		m.session.saved = true
		m.setStatus(statusSuccess, msgSaved, "")
		return loadRowCount(m.session)

	case DownloadCompleteMsg:
		m.busy = false
		if msg.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("Download failed: %v", msg.Err), "")
			return nil
		}
		d := msg.Download
		m.setStatus(statusSuccess,
			fmt.Sprintf("Downloaded %s to %s", d.FileName, d.Path),
			fmt.Sprintf("%s, %d bytes", d.MIMEType, d.Size))
		return nil

	case tea.KeyMsg:
		if m.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.focus(m.focused + 1)
		case "shift+tab", "up":
			return m.focus(m.focused - 1)
		case "enter":
			if m.focused < len(m.inputs)-1 {
				return m.focus(m.focused + 1)
			}
			return m.save()
		case "ctrl+s":
			return m.save()
		case "ctrl+d":
			return m.download("csv")
		case "ctrl+x":
			if m.session.XLSXEnabled {
				return m.download("xlsx")
			}
			return nil
		case "esc":
			return ChangeScreen(UploadScreen)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return cmd
}

func (m *FormModel) focus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focused = (i%n + n) % n
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focused {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// save validates synchronously and appends in the background. A record with
// missing fields never reaches the store.
func (m *FormModel) save() tea.Cmd {
	s := m.session
	fields := m.Fields()
	record, err := s.assemble(fields)
	if err != nil {
		if apperror.IsMissingRequiredField(err) {
			missing := strings.Join(fields.Missing(), ", ")
			s.Logger.Warn("Save rejected", logging.Field{Key: logging.FieldMissing, Value: missing})
			m.setStatus(statusWarning, msgMissingFields, "Missing: "+missing)
			return nil
		}
		m.setStatus(statusError, err.Error(), "")
		return nil
	}

	m.busy = true
	return func() tea.Msg {
		return SaveCompleteMsg{Err: s.appendRecord(record)}
	}
}

// download is only available once a record was saved in this session.
func (m *FormModel) download(format string) tea.Cmd {
	if !m.session.Saved() {
		return nil
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		m.setStatus(statusError, err.Error(), "")
		return nil
	}

	m.busy = true
	exporter := m.session.Exporter
	return func() tea.Msg {
		if format == "xlsx" {
			d, err := exporter.DownloadXLSX()
			return DownloadCompleteMsg{Download: d, Err: err}
		}
		d, err := exporter.DownloadCSV()
		return DownloadCompleteMsg{Download: d, Err: err}
	}
}

func (m *FormModel) setStatus(kind statusKind, status, detail string) {
	m.kind = kind
	m.status = status
	m.detail = detail
}

func (m *FormModel) View(width int) string {
	var b strings.Builder
	for i, input := range m.inputs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(fieldPrompts[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
	}
	box := formStyle.Width(frameWidth(width)).Render(b.String())

	parts := []string{box}
	if m.status != "" {
		style := successStyle
		switch m.kind {
		case statusWarning:
			style = warningStyle
		case statusError:
			style = errorStyle
		}
		parts = append(parts, style.Render(m.status))
		if m.detail != "" {
			parts = append(parts, mutedStyle.Render(m.detail))
		}
	}

	keys := []string{"Tab/Shift+Tab: Navigate", "Ctrl+S: Save Data to CSV"}
	if m.session.Saved() {
		keys = append(keys, "Ctrl+D: Download CSV File")
		if m.session.XLSXEnabled {
			keys = append(keys, "Ctrl+X: Download XLSX File")
		}
	}
	keys = append(keys, "Esc: Back to upload")
	parts = append(parts, helpStyle.Render(strings.Join(keys, " • ")))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
