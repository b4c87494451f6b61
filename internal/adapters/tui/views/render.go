package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"titleblock/internal/adapters/tui/styles"
)

// RenderLabelValue renders "label: value" with a styled label
func RenderLabelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// renderHelp joins the help text of bindings, skipping disabled ones
func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// ViewBuilder collects the lines of a view
type ViewBuilder struct {
	lines []string
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title followed by a blank line
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.lines = append(v.lines, styles.Title.Render(title), "")
	return v
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.lines = append(v.lines, text)
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.lines = append(v.lines, "")
	return v
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.lines = append(v.lines, styles.MutedText.Render(text))
	return v
}

// Message adds a status message and a blank line. Empty messages are
// left out.
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	v.lines = append(v.lines, style.Render(message), "")
	return v
}

// Help adds the key help line
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.lines = append(v.lines, renderHelp(bindings...))
	return v
}

// String renders the view inside the app frame
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.StringUnwrapped())
}

// StringUnwrapped renders the view for embedding in another view
func (v *ViewBuilder) StringUnwrapped() string {
	return strings.Join(v.lines, "\n")
}
