package preview

import (
	"bytes"
	"context"
	"embed"
	"html/template"

	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/theme"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	Title     string
	Lang      string
	Layout    string
	RequestID string
	// Error is the last fixture reload failure, shown above the page.
	Error string

	Hooks         map[string]template.HTML
	Heading       template.HTML
	EditButton    template.HTML
	Notifications []template.HTML
	Tabs          template.HTML
	Icons         []template.HTML
	Footer        template.HTML
}

// RenderPage renders a full demo page for f with r: every named hook plus the notifications,
// tab tree, icons, heading and footer the fixture describes. status is shown as an error banner
// when non-empty.
func RenderPage(ctx context.Context, r *theme.Renderer, f *fixture.Fixture, status string) (string, error) {
	data := pageData{
		Title:     f.Page.Course.FullName,
		Lang:      f.Lang,
		Layout:    f.Page.Layout,
		RequestID: r.RequestID(),
		Error:     status,
		Hooks:     make(map[string]template.HTML),
	}
	if data.Title == "" {
		data.Title = "Essential preview"
	}

	for _, name := range theme.HookNames() {
		out, err := r.Render(ctx, name)
		if err != nil {
			return "", err
		}
		data.Hooks[name] = markupHTML(out)
	}

	if f.Page.Heading != "" {
		data.Heading = markupHTML(r.Heading(f.Page.Heading, 2, "", ""))
	}
	if f.Session.LoggedIn && !f.Session.Guest {
		data.EditButton = markupHTML(r.EditButton(host.NewURL(f.Page.URL)))
	}
	for _, n := range f.Notifications {
		data.Notifications = append(data.Notifications, markupHTML(r.Notification(n.Message, n.Class)))
	}
	data.Tabs = markupHTML(r.TabTree(f.HostTabs()))
	for _, icon := range f.HostIcons() {
		data.Icons = append(data.Icons, markupHTML(r.PixIcon(icon)))
	}
	data.Footer = markupHTML(r.Footer(f.Footer))

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "render preview page").Build()
	}
	return buf.String(), nil
}

// markupHTML marks renderer output as safe; every hook escapes its own text.
func markupHTML(s string) template.HTML {
	return template.HTML(s) //nolint:gosec // renderer output is markup
}
