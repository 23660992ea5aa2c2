// Package component defines lifecycle-managed services.
//
// The HTTP client stack is exposed as a Component so applications can start
// it, stop it and poll its health alongside their other dependencies:
//
//	reg := component.NewRegistry()
//	_ = reg.Register(httpclient.NewComponent(cfg))
//	if err := reg.StartAll(ctx); err != nil { ... }
//	defer reg.StopAll(ctx)
package component
