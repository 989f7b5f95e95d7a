package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// PassEntry is one pass listed in a pass email.
type PassEntry struct {
	HolderName string
	Code       string
	VerifyURL  string
}

// PassEmailData holds data for the pass email templates.
type PassEmailData struct {
	EventName     string
	Venue         string
	Date          string
	RecipientName string
	GroupName     string
	Passes        []PassEntry
}

var passHTML = template.Must(template.New("pass").Parse(passHTMLTemplate))

// BuildPassEmail renders the subject and both bodies of a pass email.
func BuildPassEmail(data PassEmailData) (subject, htmlBody, textBody string, err error) {
	if len(data.Passes) == 0 {
		return "", "", "", fmt.Errorf("pass email needs at least one pass")
	}

	subject = fmt.Sprintf("Your %s pass", data.EventName)
	if len(data.Passes) > 1 {
		subject = fmt.Sprintf("Your %s passes", data.EventName)
	}

	var buf bytes.Buffer
	if err := passHTML.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("failed to render pass email: %w", err)
	}
	return subject, buf.String(), buildPassText(data), nil
}

func buildPassText(data PassEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", data.RecipientName)
	if data.GroupName != "" {
		fmt.Fprintf(&b, "Thank you for registering %s for %s.\n", data.GroupName, data.EventName)
	} else {
		fmt.Fprintf(&b, "Thank you for registering for %s.\n", data.EventName)
	}
	if data.Venue != "" || data.Date != "" {
		fmt.Fprintf(&b, "Venue: %s\nDate: %s\n", data.Venue, data.Date)
	}
	b.WriteString("\nPresent the attached QR code at the entrance:\n")
	for _, p := range data.Passes {
		fmt.Fprintf(&b, "  - %s: %s\n", p.HolderName, p.Code)
	}
	return b.String()
}

const passHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.EventName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #eef4f8;">
  <div style="max-width: 560px; margin: 0 auto; padding: 32px 24px; background-color: #ffffff;">
    <h2 style="color: #0b4f71;">{{.EventName}}</h2>
    <p>Hello {{.RecipientName}},</p>
    {{if .GroupName}}<p>Thank you for registering <strong>{{.GroupName}}</strong>. Each member's pass is attached.</p>
    {{else}}<p>Thank you for registering. Your pass is attached.</p>{{end}}
    {{if or .Venue .Date}}<p><strong>Venue:</strong> {{.Venue}}<br><strong>Date:</strong> {{.Date}}</p>{{end}}
    <table role="presentation" cellspacing="0" cellpadding="6" style="border-collapse: collapse; width: 100%;">
      {{range .Passes}}<tr>
        <td style="border-bottom: 1px solid #e5e7eb;">{{.HolderName}}</td>
        <td style="border-bottom: 1px solid #e5e7eb; font-family: 'Courier New', monospace;">{{if .VerifyURL}}<a href="{{.VerifyURL}}">{{.Code}}</a>{{else}}{{.Code}}{{end}}</td>
      </tr>{{end}}
    </table>
    <p style="color: #6b7280; font-size: 13px;">Present the attached QR code at the entrance for check-in. Do not share it with others.</p>
  </div>
</body>
</html>`
