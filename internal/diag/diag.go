// Package diag renders engine errors and kind listings for terminals.
// Colors are used only when the output supports them.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/executor"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")
)

// Renderer formats diagnostics for one output.
type Renderer struct {
	header    lipgloss.Style
	errStyle  lipgloss.Style
	okStyle   lipgloss.Style
	muted     lipgloss.Style
	highlight lipgloss.Style
	border    lipgloss.Style
}

// New returns a Renderer whose color profile is detected from w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		header:    r.NewStyle().Foreground(accentColor).Bold(true),
		errStyle:  r.NewStyle().Foreground(errorColor).Bold(true),
		okStyle:   r.NewStyle().Foreground(successColor),
		muted:     r.NewStyle().Foreground(mutedColor),
		highlight: r.NewStyle().Foreground(highlightColor),
		border:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1),
	}
}

// Error renders err. Failures nested inside blocks are shown as the trail
// of fields leading from the statement down to the block that failed.
func (r *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder

	var serr *executor.StatementError
	if errors.As(err, &serr) {
		fmt.Fprintf(&b, "%s statement %d %s %s\n",
			r.errStyle.Render("✗"),
			serr.Index,
			r.highlight.Render(serr.Source.String()),
			r.muted.Render("("+serr.Phase.String()+")"))
		err = serr.Err
	} else {
		fmt.Fprintf(&b, "%s error\n", r.errStyle.Render("✗"))
	}

	steps, cause := block.Path(err)
	indent := "  "
	for _, s := range steps {
		fmt.Fprintf(&b, "%s%s %s\n", indent, r.highlight.Render(s.Source.String()), r.muted.Render("."+string(s.Field)))
		indent += "  "
	}
	fmt.Fprintf(&b, "%s%s\n", indent, r.errStyle.Render(cause.Error()))
	return b.String()
}

// Errors renders every error in errs, one after another.
func (r *Renderer) Errors(errs []error) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(r.Error(err))
	}
	return b.String()
}

// Report renders a one-line summary of a finished run.
func (r *Renderer) Report(rep executor.Report) string {
	line := fmt.Sprintf("%s %d of %d statements executed",
		r.okStyle.Render("✓"), rep.Executed(), rep.Statements)
	if n := len(rep.Skipped); n > 0 {
		line += r.muted.Render(fmt.Sprintf(", %d skipped", n))
	}
	return line + "\n"
}

// Kinds renders the registered kinds with their fields and descriptions.
func (r *Renderer) Kinds(kinds []block.KindInfo) string {
	var lines []string
	lines = append(lines, r.header.Render("Block kinds"))
	for _, k := range kinds {
		fields := make([]string, 0, len(k.Fields))
		for _, f := range k.Fields {
			fields = append(fields, fieldSignature(f))
		}
		lines = append(lines, fmt.Sprintf("  %s { %s }", r.highlight.Render(fmt.Sprintf("%-14s", "builtin:"+string(k.ID))), strings.Join(fields, ", ")))
		for _, dl := range strings.Split(k.Description, "\n") {
			lines = append(lines, "      "+r.muted.Render(dl))
		}
	}
	return r.border.Render(strings.Join(lines, "\n")) + "\n"
}

func fieldSignature(f block.Field) string {
	switch {
	case f.Literal:
		return fmt.Sprintf("%s: literal %s", f.Name, f.Type)
	case f.Typed:
		return fmt.Sprintf("%s: %s", f.Name, f.Type)
	default:
		return f.Name
	}
}
