package theme

import (
	"context"
	"slices"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
)

type hookFunc func(ctx context.Context, r *Renderer) string

// hooks maps the names of the hooks that need no arguments beyond the request.
var hooks = map[string]hookFunc{
	"navbar":                func(_ context.Context, r *Renderer) string { return r.Navbar() },
	"custom_menu":           func(_ context.Context, r *Renderer) string { return r.CustomMenu("") },
	"language_menu":         func(_ context.Context, r *Renderer) string { return r.LanguageMenu() },
	"courses_menu":          func(ctx context.Context, r *Renderer) string { return r.CoursesMenu(ctx) },
	"theme_colours_menu":    func(_ context.Context, r *Renderer) string { return r.ThemeColoursMenu() },
	"activities_menu":       func(ctx context.Context, r *Renderer) string { return r.ActivitiesMenu(ctx) },
	"home_menu":             func(_ context.Context, r *Renderer) string { return r.HomeMenu() },
	"online_courses_menu":   func(_ context.Context, r *Renderer) string { return r.OnlineCoursesMenu() },
	"hands_on_courses_menu": func(_ context.Context, r *Renderer) string { return r.HandsOnCoursesMenu() },
	"help_menu":             func(_ context.Context, r *Renderer) string { return r.HelpMenu() },
	"messages_menu":         func(ctx context.Context, r *Renderer) string { return r.MessagesMenu(ctx) },
	"user_menu":             func(ctx context.Context, r *Renderer) string { return r.UserMenu(ctx) },
	"social_networks":       func(_ context.Context, r *Renderer) string { return r.SocialNetworks() },
	"performance_info": func(_ context.Context, r *Renderer) string {
		if r.req.Performance == nil {
			return ""
		}
		return r.PerformanceInfo(*r.req.Performance)
	},
}

// HookNames lists the hooks accepted by Render, sorted.
func HookNames() []string {
	names := make([]string, 0, len(hooks))
	for n := range hooks {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Render runs the named hook.
func (r *Renderer) Render(ctx context.Context, hook string) (string, error) {
	fn, ok := hooks[hook]
	if !ok {
		return "", errors.NotFoundError("unknown render hook").
			WithContext("hook", hook).
			Build()
	}
	return fn(ctx, r), nil
}
