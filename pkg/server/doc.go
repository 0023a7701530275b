// Package server exposes the solve pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz          liveness and build version
//	POST /v1/solve         solve a scene and return the layout or a rendering
//	POST /v1/graph         render the engine's dependency graph (dot or svg)
//
// The request body is a scene. Its format comes from the scene_format query
// parameter, else from the Content-Type (application/json, application/toml,
// application/yaml), else JSON.
//
// Query parameters of /v1/solve:
//
//	format         json (default), svg or png
//	optimize_wrap  compute wrap-content containers from run groups
//	trace          include the resolution trace in the json layout
//	width, height  override the container size
//	labels         draw box IDs in svg/png output
//	guidelines     draw guidelines in svg/png output
//	refresh        bypass the cache
//
// Every response carries an X-Request-ID header. /v1/solve also sets
// X-Resolved (true/false) and X-Cache (hit/miss). Errors are JSON:
//
//	{"error": {"code": "INVALID_SCENE", "message": "..."}, "request_id": "..."}
package server
