// Package metrics provides render observability for the Essential theme.
//
// Components receive a Recorder through dependency injection and default to NoopRecorder, so
// the renderer never needs nil checks:
//
//	r := theme.New(req, theme.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation registers its collectors on the registry it is given; the
// preview server exposes that registry through HTTPHandler.
package metrics
