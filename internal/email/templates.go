package email

import (
	"bytes"
	"fmt"
	"text/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`Hi {{.Name}},

Welcome to PrepVio! Your account is ready.

Start your first mock interview whenever you like — your free plan
includes {{.Credits}} interview credits.

The PrepVio Team`))

var ticketUpdateTemplate = template.Must(template.New("ticket_update").Parse(
	`Hi,

Your support ticket {{.Number}} has been updated. Current status: {{.Status}}.

You can view the full conversation from your dashboard.

The PrepVio Team`))

func renderTemplate(tmpl *template.Template, data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
