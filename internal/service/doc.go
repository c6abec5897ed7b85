// Package service provides the service registry for tool providers.
//
// The registry keeps a catalog of providers keyed by service ID and routes
// tool calls on the "<service>.<tool>" prefix of the tool ID. Every call is
// timed and reported to an optional Recorder.
//
// Example Usage:
//
//	registry := service.NewRegistry(metrics)
//	registry.Register(mathProvider)
//	result, err := registry.Execute(ctx, "math.gamma.p", params, appCtx)
package service
