// Package server carries the daemon's two client surfaces: a framed-JSON
// RPC endpoint on a unix socket (named pipe on Windows) used by the CLI,
// and an HTTP server exposing the same methods as JSON-RPC 2.0 over
// /rpc plus a websocket at /ws that additionally receives push
// notifications when alarms ring and timers expire.
package server
