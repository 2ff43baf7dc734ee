package fixture

import (
	"context"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/lang"
	"git.home.luguber.info/inful/essential/internal/tabs"
)

// RequestOption customizes the request built from a fixture.
type RequestOption func(*host.Request)

// WithMessageStore replaces the fixture's in-memory messages with store.
func WithMessageStore(store host.MessageStore) RequestOption {
	return func(r *host.Request) { r.Messages = store }
}

// Request builds the host request described by the fixture, with strings from bundle.
func (f *Fixture) Request(bundle *lang.Bundle, opts ...RequestOption) host.Request {
	users := f.userIndex()
	req := host.Request{
		Page:        f.page(),
		User:        f.User.host(),
		Now:         f.Now,
		Renderer:    &BaseRenderer{End: f.EndCode},
		Strings:     bundle.Catalog(f.Lang),
		Permissions: capabilities(f.Capabilities),
		Session:     &session{s: f.Session},
		Courses:     &courses{f: f},
		Directory:   directory(f.MnetHosts),
		Messages:    &memoryStore{f: f, users: users},
	}
	if p := f.Performance; p != nil {
		req.Performance = &host.PerformanceInfo{
			RealTime:     p.RealTime,
			MemoryTotal:  p.MemoryTotal,
			MemoryPeak:   p.MemoryPeak,
			IncludeFiles: p.IncludeFiles,
			DBQueries:    p.DBQueries,
			ServerLoad:   p.ServerLoad,
		}
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

func (f *Fixture) page() host.Page {
	p := host.Page{
		URL:     host.NewURL(f.Page.URL),
		Layout:  f.Page.Layout,
		Course:  f.Page.Course.host(),
		Editing: f.Page.Editing,
		Section: f.Page.Section,
	}
	for _, n := range f.Page.Navbar {
		item := host.NavItem{Text: n.Text, Title: n.Title}
		if n.URL != "" {
			item.URL = host.NewURL(n.URL)
		}
		p.Navbar = append(p.Navbar, item)
	}
	return p
}

// HostTabs converts the fixture tabs.
func (f *Fixture) HostTabs() []tabs.Tab { return convertTabs(f.Tabs) }

func convertTabs(in []Tab) []tabs.Tab {
	if len(in) == 0 {
		return nil
	}
	out := make([]tabs.Tab, 0, len(in))
	for _, t := range in {
		tab := tabs.Tab{
			ID:        t.ID,
			Text:      t.Text,
			Title:     t.Title,
			RawLink:   t.RawLink,
			Selected:  t.Selected,
			Activated: t.Activated,
			Inactive:  t.Inactive,
			Subtree:   convertTabs(t.Subtree),
		}
		if t.Link != "" {
			tab.Link = host.NewURL(t.Link)
		}
		out = append(out, tab)
	}
	return out
}

// HostIcons converts the fixture icons.
func (f *Fixture) HostIcons() []host.Icon {
	out := make([]host.Icon, 0, len(f.Icons))
	for _, i := range f.Icons {
		out = append(out, host.Icon{Pix: i.Pix, Component: i.Component, Alt: i.Alt,
			Attributes: map[string]string{"alt": i.Alt, "class": "icon"}})
	}
	return out
}

func (u User) host() host.User {
	return host.User{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		MnetHostID: u.MnetHostID,
		Remote:     u.Remote,
	}
}

func (c Course) host() host.Course {
	return host.Course{
		ID:        c.ID,
		FullName:  c.FullName,
		ShortName: c.ShortName,
		Visible:   !c.Hidden,
		Lang:      c.Lang,
		ContextID: c.ContextID,
	}
}

func (f *Fixture) userIndex() map[int64]host.User {
	idx := make(map[int64]host.User, len(f.Users)+1)
	for _, u := range f.Users {
		idx[u.ID] = u.host()
	}
	if f.User.ID != 0 {
		idx[f.User.ID] = f.User.host()
	}
	return idx
}

type capabilities map[string][]int64

func (c capabilities) HasCapability(capability string, contextID int64) bool {
	ctxs, ok := c[capability]
	if !ok {
		return false
	}
	return len(ctxs) == 0 || slices.Contains(ctxs, contextID)
}

type session struct{ s Session }

func (s *session) IsLoggedIn() bool { return s.s.LoggedIn }
func (s *session) IsGuest() bool    { return s.s.Guest }
func (s *session) SessKey() string  { return s.s.SessKey }

func (s *session) LoggedInAs() (host.User, bool) {
	if s.s.LoggedInAs == nil {
		return host.User{}, false
	}
	return s.s.LoggedInAs.host(), true
}

func (s *session) IsRoleSwitched(courseID int64) bool {
	return slices.Contains(s.s.RoleSwitched, courseID)
}

func (s *session) DuringInstall() bool { return s.s.DuringInstall }

type courses struct{ f *Fixture }

func (c *courses) EnrolledCourses(_ context.Context, _ int64) ([]host.Course, error) {
	out := make([]host.Course, 0, len(c.f.Courses))
	for _, co := range c.f.Courses {
		out = append(out, co.host())
	}
	slices.SortStableFunc(out, func(a, b host.Course) int { return strings.Compare(a.FullName, b.FullName) })
	return out, nil
}

func (c *courses) Activities(_ context.Context, courseID int64) ([]host.Activity, error) {
	var out []host.Activity
	for _, a := range c.f.Activities {
		if a.CourseID != 0 && a.CourseID != courseID {
			continue
		}
		arch := host.ArchetypeOther
		if a.Resource {
			arch = host.ArchetypeResource
		}
		out = append(out, host.Activity{
			ModName:     a.ModName,
			PluralName:  a.PluralName,
			UserVisible: !a.Hidden,
			HasView:     !a.NoView,
			Archetype:   arch,
		})
	}
	return out, nil
}

type directory []MnetHost

func (d directory) MnetHost(_ context.Context, id int64) (host.MnetHost, bool, error) {
	for _, h := range d {
		if h.ID == id {
			return host.MnetHost{ID: h.ID, Name: h.Name, WWWRoot: h.WWWRoot}, true, nil
		}
	}
	return host.MnetHost{}, false, nil
}

// memoryStore answers message queries from the fixture.
type memoryStore struct {
	f     *Fixture
	users map[int64]host.User
}

// Records returns the fixture messages as store rows, ids assigned in fixture order.
func (f *Fixture) Records() []host.MessageRecord {
	out := make([]host.MessageRecord, 0, len(f.Messages))
	for i, m := range f.Messages {
		to := m.To
		if to == 0 {
			to = f.User.ID
		}
		created := f.created(m)
		rec := host.MessageRecord{
			ID:           int64(i + 1),
			SmallMessage: m.Text,
			FromUserID:   m.From,
			ToUserID:     to,
			TimeCreated:  created,
			Format:       m.Format,
			Notification: m.Notification,
			ContextURL:   m.ContextURL,
		}
		if m.Read {
			rec.TimeRead = created.Add(time.Minute)
		}
		out = append(out, rec)
	}
	return out
}

func (s *memoryStore) query(userID int64, read bool, limit int) []host.MessageRecord {
	var out []host.MessageRecord
	for _, rec := range s.f.Records() {
		if rec.ToUserID == userID && !rec.TimeRead.IsZero() == read {
			out = append(out, rec)
		}
	}
	slices.SortStableFunc(out, func(a, b host.MessageRecord) int { return b.TimeCreated.Compare(a.TimeCreated) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *memoryStore) Unread(_ context.Context, userID int64, limit int) ([]host.MessageRecord, error) {
	return s.query(userID, false, limit), nil
}

func (s *memoryStore) Read(_ context.Context, userID int64, limit int) ([]host.MessageRecord, error) {
	return s.query(userID, true, limit), nil
}

func (s *memoryStore) User(_ context.Context, id int64) (host.User, bool, error) {
	u, ok := s.users[id]
	return u, ok, nil
}

var _ host.MessageStore = (*memoryStore)(nil)
