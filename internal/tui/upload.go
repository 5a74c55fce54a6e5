package tui

import (
	"fmt"
	"strings"

	"fjacquet/doc-extract-csv/internal/extraction"
	"fjacquet/doc-extract-csv/internal/logging"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UploadModel collects document paths and feeds them to the accumulator.
type UploadModel struct {
	session   *Session
	input     textinput.Model
	busy      bool
	lastBatch []extraction.FileResult
}

func NewUploadModel(session *Session) *UploadModel {
	input := textinput.New()
	input.Placeholder = "path/to/report.pdf (one file per entry)"
	input.Focus()

	return &UploadModel{session: session, input: input}
}

func (m *UploadModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.busy {
			return nil
		}
		switch key.String() {
		case "enter":
			paths := typedPath(m.input.Value())
			if len(paths) == 0 {
				return ChangeScreen(FormScreen)
			}
			return m.Start(paths)
		case "ctrl+f":
			return browseFiles(m.session.BrowseDir)
		case "tab":
			return ChangeScreen(FormScreen)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// Start reads paths from disk in the background.
func (m *UploadModel) Start(paths []string) tea.Cmd {
	m.busy = true
	s := m.session
	s.Logger.Debug("Loading uploads", logging.Field{Key: logging.FieldCount, Value: len(paths)})
	return func() tea.Msg {
		return UploadsLoadedMsg{Uploads: s.loadUploads(paths)}
	}
}

// Finish extracts the loaded uploads in order. Extraction runs on the update
// loop so the accumulated text is only touched from one goroutine.
func (m *UploadModel) Finish(uploads []pendingUpload) tea.Cmd {
	m.lastBatch = m.session.ingest(uploads)
	m.busy = false
	m.input.SetValue("")
	return nil
}

// LastBatch returns the results of the most recent upload.
func (m *UploadModel) LastBatch() []extraction.FileResult {
	return m.lastBatch
}

func (m *UploadModel) View(width int) string {
	form := labelStyle.Render("Upload files (PDF, text, or Word documents):") + "\n" + m.input.View()
	box := formStyle.Width(frameWidth(width)).Render(form)

	var lines []string
	if m.busy {
		lines = append(lines, mutedStyle.Render("Extracting text..."))
	}

	if len(m.lastBatch) > 0 {
		var ok, skipped int
		for _, r := range m.lastBatch {
			switch {
			case r.Skipped:
				skipped++
			case r.Err == nil:
				ok++
			}
		}
		summary := fmt.Sprintf("Last upload: %d extracted", ok)
		if skipped > 0 {
			summary += fmt.Sprintf(", %d skipped (unsupported type)", skipped)
		}
		lines = append(lines, successStyle.Render(summary))
	}

	for _, r := range m.session.Accumulator.Errors() {
		lines = append(lines, errorStyle.Render(fileErrorText(r)))
	}

	help := helpStyle.Render("Enter: Extract • Ctrl+F: Browse and mark several files • Tab: Fill in fields • Ctrl+C: Quit")

	parts := append([]string{box}, lines...)
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// BrowseModel lists the supported documents of a directory and lets the
// operator mark several of them.
type BrowseModel struct {
	files  []string
	cursor int
	marked map[int]bool
	err    error
}

func NewBrowseModel() *BrowseModel {
	return &BrowseModel{marked: make(map[int]bool)}
}

// SetFiles replaces the listing and clears the selection.
func (m *BrowseModel) SetFiles(files []string, err error) {
	m.files = files
	m.err = err
	m.cursor = 0
	m.marked = make(map[int]bool)
}

// Selected returns the marked files in listing order, or the file under the
// cursor when nothing is marked.
func (m *BrowseModel) Selected() []string {
	var selected []string
	for i, f := range m.files {
		if m.marked[i] {
			selected = append(selected, f)
		}
	}
	if len(selected) == 0 && len(m.files) > 0 {
		selected = []string{m.files[m.cursor]}
	}
	return selected
}

func (m *BrowseModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case " ":
		if len(m.files) > 0 {
			m.marked[m.cursor] = !m.marked[m.cursor]
		}
	case "enter":
		if selected := m.Selected(); len(selected) > 0 {
			return uploadPaths(selected)
		}
	case "esc":
		return ChangeScreen(UploadScreen)
	}
	return nil
}

func (m *BrowseModel) View() string {
	label := labelStyle.Render("Select files (." + strings.Join(extraction.SupportedExtensions(), ", .") + ")")

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, label,
			errorStyle.Render(fmt.Sprintf("Cannot list files: %v", m.err)),
			helpStyle.Render("Esc: Back"))
	}
	if len(m.files) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, label,
			warningStyle.Render("No supported files found in the current directory"),
			helpStyle.Render("Esc: Back"))
	}

	var list strings.Builder
	for i, f := range m.files {
		cursor := " "
		style := itemStyle
		if i == m.cursor {
			cursor = ">"
			style = selectedItemStyle
		}
		mark := "[ ]"
		if m.marked[i] {
			mark = "[x]"
		}
		fmt.Fprintf(&list, "%s %s %s\n", cursor, mark, style.Render(f))
	}

	help := helpStyle.Render("↑/↓: Navigate • Space: Mark • Enter: Upload • Esc: Cancel")
	return lipgloss.JoinVertical(lipgloss.Left, label, list.String(), help)
}
