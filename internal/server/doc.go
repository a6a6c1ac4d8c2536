// Package server exposes the playlist transfer engine over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers [http.ServeMux] method patterns, so the mux
// itself answers mismatched methods with 405.
//
// # Endpoints
//
// POST /api/transfer runs one playlist transfer with per-request service handles and
// returns the transfer report as JSON. Failure sentinels map onto status codes:
// invalid locator 400, authentication failures 401, upstream read/write failures 502.
//
// POST /api/headers/test validates a captured YouTube Music browser header set and
// reports the first missing piece.
//
// GET /api/health reports liveness.
//
// # Lifecycle
//
// [Server] wraps http.Server. Start serves until its context is canceled, then drains
// in-flight requests before returning. The serve command wires cancellation to SIGINT
// and SIGTERM.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
