package reminder

import (
	"html/template"
	"strings"
)

//go:generate mockgen -source=template.go -destination=mock/renderer_mock.go -package=mock
type Renderer interface {
	Render(model ReminderEmailModel) (string, error)
}

const reminderTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Dear {{.AssigneeName}},</p>
  <p>
    The task <strong>{{.TaskTitle}}</strong> at {{.CompanyName}} is due on
    <strong>{{.DueDateLocal}}</strong> ({{.TimeZoneID}}) and still has missing documents:
  </p>
  <ul>
    {{range .MissingDocuments}}<li>{{.}}</li>
    {{end}}
  </ul>
  {{if .TaskURL}}<p><a href="{{.TaskURL}}">Open the task</a></p>{{end}}
  <p>This is an automated reminder.</p>
</body>
</html>`

type templateRenderer struct {
	tmpl *template.Template
}

func NewTemplateRenderer() Renderer {
	return &templateRenderer{
		tmpl: template.Must(template.New("reminder").Parse(reminderTemplate)),
	}
}

func (r *templateRenderer) Render(model ReminderEmailModel) (string, error) {
	var out strings.Builder
	if err := r.tmpl.Execute(&out, model); err != nil {
		return "", err
	}
	return out.String(), nil
}
