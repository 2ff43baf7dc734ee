// Package host declares the contract between the Essential theme and the platform that embeds it.
//
// The host owns the request lifecycle, authentication, data access, permission evaluation and
// string storage. It hands the theme a Request carrying plain values (page, user, course) and
// capability interfaces; the theme only ever reads from them and returns markup.
package host
