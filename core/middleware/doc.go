// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - CORS: adds the permissive CORS header set to every response and answers
//     preflight OPTIONS requests with an empty 200.
//   - RayID: generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - AccessLog: writes one `<client-address> - <request summary>` line per
//     request to an injectable writer (stdout by default).
//
// The dev server registers them globally, in the order rayid, accesslog, cors.
package middleware
