package fixture

import (
	"strconv"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/markup"
)

// BaseRenderer is a minimal host page renderer producing the platform's stock markup.
type BaseRenderer struct {
	// End is returned by EndCode.
	End string
}

var _ host.PageRenderer = (*BaseRenderer)(nil)

func (b *BaseRenderer) RenderNavItem(item host.NavItem) string {
	if item.URL == nil {
		return markup.Span(markup.Escape(item.Text), "")
	}
	return markup.Link(item.URL.Out(), markup.Escape(item.Text), markup.A("title", item.Title))
}

func (b *BaseRenderer) UserPicture(u host.User, size int, link bool) string {
	px := strconv.Itoa(size)
	img := markup.EmptyTag("img",
		markup.A("src", "/user/pix.php/"+strconv.FormatInt(u.ID, 10)+"/f2.jpg"),
		markup.A("alt", "Picture of "+u.FullName()),
		markup.Class("userpicture"),
		markup.A("width", px),
		markup.A("height", px),
	)
	if !link {
		return img
	}
	return markup.Link(host.NewURL("/user/view.php", host.P("id", strconv.FormatInt(u.ID, 10))).Out(), img)
}

func (b *BaseRenderer) RenderPixIcon(icon host.Icon) string {
	alt := icon.Alt
	if v, ok := icon.Attributes["alt"]; ok {
		alt = v
	}
	return markup.EmptyTag("img",
		markup.A("src", b.PixURL(icon.Pix, icon.Component)),
		markup.A("alt", alt),
		markup.Class("icon"),
	)
}

func (b *BaseRenderer) PixURL(name, component string) string {
	if component == "" {
		component = "core"
	}
	return "/theme/image.php/essential/" + component + "/-1/" + name
}

func (b *BaseRenderer) Heading(text string, level int, classes, id string) string {
	tag := "h" + strconv.Itoa(min(max(level, 1), 6))
	return markup.Tag(tag, markup.Escape(text), markup.Class(classes), markup.A("id", id))
}

func (b *BaseRenderer) EndCode() string { return b.End }
