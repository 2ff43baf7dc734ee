package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyHook       = "hook"
	KeyUserID     = "user_id"
	KeyCourseID   = "course_id"
	KeyPageLayout = "page_layout"
	KeyRequestID  = "request_id"
	KeyIcon       = "icon"
	KeyMenu       = "menu"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyError      = "error"

	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Hook(name string) slog.Attr        { return slog.String(KeyHook, name) }
func UserID(id int64) slog.Attr         { return slog.Int64(KeyUserID, id) }
func CourseID(id int64) slog.Attr       { return slog.Int64(KeyCourseID, id) }
func PageLayout(l string) slog.Attr     { return slog.String(KeyPageLayout, l) }
func RequestID(id string) slog.Attr     { return slog.String(KeyRequestID, id) }
func Icon(token string) slog.Attr       { return slog.String(KeyIcon, token) }
func Menu(name string) slog.Attr        { return slog.String(KeyMenu, name) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Method(m string) slog.Attr         { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr         { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr     { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
