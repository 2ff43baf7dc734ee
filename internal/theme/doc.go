// Package theme implements the Essential theme renderer.
//
// A Renderer decorates the host's page renderer for one render pass. Every hook returns markup,
// or "" where the hook has nothing to show; rendering never fails. Host failures (a store that
// cannot be queried, an unknown network host) degrade the affected hook and are logged.
//
// Menus built by ActivitiesMenu, HomeMenu, OnlineCoursesMenu, HandsOnCoursesMenu and HelpMenu
// are memoized on the Renderer, so create a new Renderer per request.
//
// Hooks without arguments can also be run by name through Render; HookNames lists them.
package theme
