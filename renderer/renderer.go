// Package renderer turns simulation reports into markdown strings.
//
// Rendering is template driven: each report kind has a main template and a
// set of partials, all embedded in the binary. Render functions never fail;
// a template error is rendered into the output where it is impossible to miss.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/forecast"
)

//go:embed templates/*.md
var templates embed.FS

// Summary renders a full snapshot of the simulation: accounts, debts, assets
// and net worth.
func Summary(r *forecast.Report) string {
	partials := map[string]string{
		"summary_accounts": "summary_accounts.md",
		"summary_debts":    "summary_debts.md",
		"summary_assets":   "summary_assets.md",
	}
	return renderTemplate("summary", "summary.md", partials, r)
}

// NetWorth renders the one-line net worth entry used for periodic output.
func NetWorth(r *forecast.Report) string {
	return renderTemplate("networth", "networth.md", nil, r)
}

// Insolvency renders the closing notice of a run that ended in bankruptcy.
func Insolvency(r *forecast.Report, needed forecast.Money) string {
	data := struct {
		*forecast.Report
		Needed forecast.Money
	}{r, needed}
	return renderTemplate("insolvency", "insolvency.md", nil, data)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
