// Package fixture describes a render request in YAML and turns it into an in-memory host.
//
// Fixtures drive the CLI, the preview server and the renderer tests. Times are either absolute
// (created) or relative to the fixture clock (age, a Go duration such as "90s" or "3h").
package fixture

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
)

//go:embed testdata/demo.yaml
var demo []byte

// Fixture is one render request.
type Fixture struct {
	Now  time.Time `yaml:"now"`
	Lang string    `yaml:"lang"`

	Page    Page     `yaml:"page"`
	User    User     `yaml:"user"`
	Session Session  `yaml:"session"`
	Courses []Course `yaml:"courses"`
	// Capabilities maps a capability to the contexts granting it; an empty list grants it
	// everywhere.
	Capabilities map[string][]int64 `yaml:"capabilities"`

	Activities []Activity `yaml:"activities"`
	MnetHosts  []MnetHost `yaml:"mnet_hosts"`
	Users      []User     `yaml:"users"`
	Messages   []Message  `yaml:"messages"`

	Tabs          []Tab          `yaml:"tabs"`
	Icons         []Icon         `yaml:"icons"`
	Notifications []Notification `yaml:"notifications"`
	Performance   *Performance   `yaml:"performance"`
	Footer        string         `yaml:"footer"`
	EndCode       string         `yaml:"end_code"`
}

type Page struct {
	URL     string    `yaml:"url"`
	Layout  string    `yaml:"layout"`
	Course  Course    `yaml:"course"`
	Editing bool      `yaml:"editing"`
	Section int       `yaml:"section"`
	Navbar  []NavItem `yaml:"navbar"`
	Heading string    `yaml:"heading"`
}

type NavItem struct {
	Text  string `yaml:"text"`
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type User struct {
	ID         int64  `yaml:"id"`
	FirstName  string `yaml:"firstname"`
	LastName   string `yaml:"lastname"`
	Email      string `yaml:"email"`
	MnetHostID int64  `yaml:"mnet_host_id"`
	Remote     bool   `yaml:"remote"`
}

type Session struct {
	LoggedIn      bool    `yaml:"logged_in"`
	Guest         bool    `yaml:"guest"`
	LoggedInAs    *User   `yaml:"logged_in_as"`
	SessKey       string  `yaml:"sesskey"`
	RoleSwitched  []int64 `yaml:"role_switched"`
	DuringInstall bool    `yaml:"during_install"`
}

type Course struct {
	ID        int64  `yaml:"id"`
	FullName  string `yaml:"fullname"`
	ShortName string `yaml:"shortname"`
	Hidden    bool   `yaml:"hidden"`
	Lang      string `yaml:"lang"`
	ContextID int64  `yaml:"context_id"`
}

type Activity struct {
	CourseID   int64  `yaml:"course"`
	ModName    string `yaml:"modname"`
	PluralName string `yaml:"plural"`
	Hidden     bool   `yaml:"hidden"`
	NoView     bool   `yaml:"no_view"`
	Resource   bool   `yaml:"resource"`
}

type MnetHost struct {
	ID      int64  `yaml:"id"`
	Name    string `yaml:"name"`
	WWWRoot string `yaml:"wwwroot"`
}

// Message is a message or notification addressed to the fixture user unless To is set.
type Message struct {
	From         int64     `yaml:"from"`
	To           int64     `yaml:"to"`
	Text         string    `yaml:"text"`
	Format       int       `yaml:"format"`
	Notification bool      `yaml:"notification"`
	ContextURL   string    `yaml:"context_url"`
	Created      time.Time `yaml:"created"`
	Age          string    `yaml:"age"`
	Read         bool      `yaml:"read"`
}

type Tab struct {
	ID        string `yaml:"id"`
	Text      string `yaml:"text"`
	Title     string `yaml:"title"`
	Link      string `yaml:"link"`
	RawLink   string `yaml:"raw_link"`
	Selected  bool   `yaml:"selected"`
	Activated bool   `yaml:"activated"`
	Inactive  bool   `yaml:"inactive"`
	Subtree   []Tab  `yaml:"subtree"`
}

type Icon struct {
	Pix       string `yaml:"pix"`
	Component string `yaml:"component"`
	Alt       string `yaml:"alt"`
}

type Notification struct {
	Message string `yaml:"message"`
	Class   string `yaml:"class"`
}

type Performance struct {
	RealTime     time.Duration `yaml:"realtime"`
	MemoryTotal  int64         `yaml:"memory_total"`
	MemoryPeak   int64         `yaml:"memory_peak"`
	IncludeFiles int           `yaml:"include_files"`
	DBQueries    int           `yaml:"db_queries"`
	ServerLoad   float64       `yaml:"server_load"`
}

// Demo returns the bundled demo fixture.
func Demo() (*Fixture, error) { return Parse(demo) }

// Load reads the fixture file at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read fixture").
			WithContext("path", path).Build()
	}
	f, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes and validates a fixture. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	f := &Fixture{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryValidation, "parse fixture").Build()
	}
	f.applyDefaults()
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fixture) applyDefaults() {
	if f.Now.IsZero() {
		f.Now = time.Now()
	}
	if f.Lang == "" {
		f.Lang = "en"
	}
	if f.Page.URL == "" {
		f.Page.URL = "/"
	}
	if f.Page.Layout == "" {
		f.Page.Layout = "frontpage"
	}
	if f.Page.Course.ID == 0 {
		f.Page.Course.ID = 1
	}
	if f.Page.Course.ContextID == 0 {
		f.Page.Course.ContextID = f.Page.Course.ID + 1
	}
	for i := range f.Courses {
		if f.Courses[i].ContextID == 0 {
			f.Courses[i].ContextID = f.Courses[i].ID + 1
		}
	}
	if f.Session.SessKey == "" {
		f.Session.SessKey = "sesskey"
	}
}

func (f *Fixture) validate() error {
	for i, m := range f.Messages {
		if m.Age == "" {
			continue
		}
		if _, err := time.ParseDuration(m.Age); err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid message age").
				WithContext("message", i).
				WithContext("age", m.Age).
				Build()
		}
	}
	if f.Session.Guest && !f.Session.LoggedIn {
		return errors.ValidationError("guest session must be logged in").Build()
	}
	return nil
}

// created resolves the creation time of m against the fixture clock.
func (f *Fixture) created(m Message) time.Time {
	if m.Age != "" {
		d, _ := time.ParseDuration(m.Age)
		return f.Now.Add(-d)
	}
	if m.Created.IsZero() {
		return f.Now
	}
	return m.Created
}
