package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// Built-in templates used when no override exists in the templates dir.
// Every template receives a TemplateData map; ActionURL/ActionText drive
// the deep-link button back into the application.
var defaultTemplates = map[string]string{
	"notification": `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Title}}</h2>
  <p>{{.Message}}</p>
  {{if .ActionURL}}<p><a href="{{.ActionURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;">{{if .ActionText}}{{.ActionText}}{{else}}Open HireLink{{end}}</a></p>{{end}}
  <hr>
  <p style="color:#888;font-size:12px;">You are receiving this email because of activity on your HireLink account.</p>
</body>
</html>`,

	"interview_request": `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New Interview Request</h2>
  <p>Hi {{.UserName}},</p>
  <p>{{.CompanyName}} has requested an interview with you for the <strong>{{.PositionTitle}}</strong> position.</p>
  <p>Scheduled for: <strong>{{.ScheduledAt}}</strong> ({{.Duration}} minutes)</p>
  {{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
  {{if .ActionURL}}<p><a href="{{.ActionURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;">View Interview</a></p>{{end}}
</body>
</html>`,

	"interview_reminder": `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Interview Reminder</h2>
  <p>Hi {{.UserName}},</p>
  <p>This is a reminder about your upcoming interview for <strong>{{.PositionTitle}}</strong>.</p>
  <p>Scheduled for: <strong>{{.ScheduledAt}}</strong></p>
  {{if .ActionURL}}<p><a href="{{.ActionURL}}">Join / view details</a></p>{{end}}
</body>
</html>`,
}

// TemplateManager renders HTML email bodies. Templates in dirPath
// override the built-in ones by file name (<name>.html).
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager(dirPath string) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range defaultTemplates {
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in template %s: %w", name, err)
		}
		tm.templates[name] = tmpl
	}

	if dirPath != "" {
		if err := tm.LoadTemplates(dirPath); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// LoadTemplates reads *.html files from dirPath. Missing directory is not
// an error; built-in templates remain in effect.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read templates dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".html")
		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}

		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}

		tm.templates[name] = tmpl
	}

	return nil
}

func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tmpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
