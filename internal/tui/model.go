package tui

import (
	"fmt"
	"unicode/utf8"

	"fjacquet/doc-extract-csv/internal/export"
	"fjacquet/doc-extract-csv/internal/extraction"
	"fjacquet/doc-extract-csv/internal/fileutils"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Screen int

const (
	UploadScreen Screen = iota
	BrowseScreen
	FormScreen
)

// Model is the root bubbletea model. Key presses go to the current screen;
// completion messages are routed to the screen that issued them.
type Model struct {
	session  *Session
	screen   Screen
	upload   *UploadModel
	browse   *BrowseModel
	form     *FormModel
	rows     int
	rowsErr  error
	quitting bool
	width    int
	height   int
}

// NewModel creates the root model on the upload screen.
func NewModel(session *Session) Model {
	if session.Title == "" {
		session.Title = DefaultTitle
	}
	if session.BrowseDir == "" {
		session.BrowseDir = "."
	}
	return Model{
		session: session,
		screen:  UploadScreen,
		upload:  NewUploadModel(session),
		browse:  NewBrowseModel(),
		form:    NewFormModel(session),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadRowCount(m.session))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case ScreenChangeMsg:
		m.screen = msg.Screen
		return m, nil

	case RowCountMsg:
		m.rows, m.rowsErr = msg.Count, msg.Err
		return m, nil

	case BrowseMsg:
		m.browse.SetFiles(msg.Files, msg.Err)
		m.screen = BrowseScreen
		return m, nil

	case UploadPathsMsg:
		m.screen = UploadScreen
		return m, m.upload.Start(msg.Paths)

	case UploadsLoadedMsg:
		return m, m.upload.Finish(msg.Uploads)

	case SaveCompleteMsg, DownloadCompleteMsg:
		return m, m.form.Update(msg)
	}

	var cmd tea.Cmd
	switch m.screen {
	case UploadScreen:
		cmd = m.upload.Update(msg)
	case BrowseScreen:
		cmd = m.browse.Update(msg)
	case FormScreen:
		cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render(m.session.Title)

	var content string
	switch m.screen {
	case UploadScreen:
		content = m.upload.View(m.width)
	case BrowseScreen:
		content = m.browse.View()
	case FormScreen:
		content = m.form.View(m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, content, m.summary())
}

// summary is the status line shown under every screen.
func (m Model) summary() string {
	acc := m.session.Accumulator
	rows := fmt.Sprintf("%d", m.rows)
	if m.rowsErr != nil {
		rows = "unavailable"
	}
	return helpStyle.Render(fmt.Sprintf(
		"Files processed: %d • Errors: %d • Extracted text: %d chars • Rows in store: %s",
		len(acc.Results()),
		len(acc.Errors()),
		utf8.RuneCountInString(acc.Text()),
		rows,
	))
}

// ScreenChangeMsg switches the visible screen.
type ScreenChangeMsg struct {
	Screen Screen
}

// RowCountMsg carries the number of records currently in the store.
type RowCountMsg struct {
	Count int
	Err   error
}

// BrowseMsg carries the candidate uploads found by the file browser.
type BrowseMsg struct {
	Files []string
	Err   error
}

// UploadPathsMsg asks the upload screen to process paths.
type UploadPathsMsg struct {
	Paths []string
}

// UploadsLoadedMsg carries files read from disk, ready for extraction.
type UploadsLoadedMsg struct {
	Uploads []pendingUpload
}

// SaveCompleteMsg reports the outcome of a store append.
type SaveCompleteMsg struct {
	Err error
}

// DownloadCompleteMsg reports the outcome of a download.
type DownloadCompleteMsg struct {
	Download export.Download
	Err      error
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func loadRowCount(s *Session) tea.Cmd {
	return func() tea.Msg {
		n, err := s.rowCount()
		return RowCountMsg{Count: n, Err: err}
	}
}

func browseFiles(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := fileutils.ListFilesWithExtensions(dir, extraction.SupportedExtensions()...)
		return BrowseMsg{Files: files, Err: err}
	}
}

func uploadPaths(paths []string) tea.Cmd {
	return func() tea.Msg {
		return UploadPathsMsg{Paths: paths}
	}
}
