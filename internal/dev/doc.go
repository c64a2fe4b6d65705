// Package dev provides the development server and hot reload functionality.
//
// This package implements:
//   - File watching for SVG, config, and asset changes
//   - On-demand SVG module serving (compiled components, URL modules)
//   - WebSocket-based browser refresh
//   - Error overlay in browser
//
// # Architecture
//
// The development server consists of several components:
//
//   - Watcher: Monitors the file system for changes
//   - Server: Serves project files and generated SVG modules
//   - ReloadServer: Notifies browsers of changes via WebSocket
//
// # Usage
//
//	srv := dev.NewServer(dev.ServerOptions{Config: cfg})
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Module Serving
//
// Requests for .svg paths are classified the same way bundled imports
// are. A component-mode request returns a compiled ES module, a
// url-mode request returns a module whose default export is the raw
// asset URL, and the ?raw query serves the SVG bytes directly.
//
// # Hot Reload Protocol
//
// The browser connects to /_svgkit/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
