// Package presentation renders human-readable recipe summaries.
package presentation

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
)

// RecipeMarkdown summarizes an unfitted recipe as markdown.
func RecipeMarkdown(r *recipe.Recipe) string {
	var b strings.Builder
	b.WriteString("# Recipe\n\n")
	writeRoles(&b, r.Roles())
	b.WriteString("\n## Steps\n\n")
	if len(r.Steps()) == 0 {
		b.WriteString("_No steps declared._\n")
	}
	for i, st := range r.Steps() {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, st.Describe())
	}
	return b.String()
}

// FittedMarkdown summarizes a fitted recipe as markdown, including the
// statistics each step captured.
func FittedMarkdown(f *recipe.Fitted) string {
	var b strings.Builder
	b.WriteString("# Fitted recipe\n\n")
	writeRoles(&b, f.Roles())
	b.WriteString("\n## Steps\n\n")
	for i, fs := range f.Steps() {
		fmt.Fprintf(&b, "%d. `%s` (inputs: %s)\n", i+1, fs.Describe(), strings.Join(fs.Columns(), ", "))
	}
	return b.String()
}

func writeRoles(b *strings.Builder, roles domain.Roles) {
	fmt.Fprintf(b, "- **Outcome**: %s\n", roles.Outcome)
	predictors := roles.Predictors()
	sort.Strings(predictors)
	if len(predictors) > 8 {
		fmt.Fprintf(b, "- **Predictors**: %s, … (%d total)\n", strings.Join(predictors[:8], ", "), len(predictors))
	} else {
		fmt.Fprintf(b, "- **Predictors**: %s\n", strings.Join(predictors, ", "))
	}
}

// Render renders markdown for the terminal. On a TTY with color
// support it goes through glamour; otherwise the markdown is returned
// as-is so output stays pipe-friendly.
func Render(markdown string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return markdown
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return markdown
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
