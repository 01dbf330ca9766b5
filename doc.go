// Package spakit is the navigation and session core of a passwordless single-page
// client. It resolves paths to views, renders at most one view at a time, keeps the
// signed-in session in pluggable storage, and turns a magic-link callback fragment
// into either a stored session or a retry flow.
//
// The module has no code in its root package. This file is an index of the
// packages that make up the client.
//
// # Getting Documentation
//
//	go doc github.com/dmitrymomot/spakit/core/navigation
//	go doc -all github.com/dmitrymomot/spakit/core/router
//
// # Core Packages
//
//	github.com/dmitrymomot/spakit/core/callback    - Magic-link callback fragment handling and retry flow
//	github.com/dmitrymomot/spakit/core/config      - Type-safe environment variable loading
//	github.com/dmitrymomot/spakit/core/httpclient  - JSON API client with normalized responses
//	github.com/dmitrymomot/spakit/core/logger      - Structured logging built on slog
//	github.com/dmitrymomot/spakit/core/navigation  - History, link interception and the single-mount controller
//	github.com/dmitrymomot/spakit/core/response    - Response normalization and API error values
//	github.com/dmitrymomot/spakit/core/router      - Ordered path-to-view routing with auth guards
//	github.com/dmitrymomot/spakit/core/sanitizer   - Input cleaning for emails and usernames
//	github.com/dmitrymomot/spakit/core/session     - Session value and the persisted session store
//	github.com/dmitrymomot/spakit/core/storage     - Key-value storage backends (memory, local file)
//	github.com/dmitrymomot/spakit/core/validator   - Rule-based struct validation
//	github.com/dmitrymomot/spakit/core/view        - View handles with one-shot disconnect hooks
//	github.com/dmitrymomot/spakit/core/viewcache   - Memoized asynchronous view loading
//
// # Utility Packages
//
//	github.com/dmitrymomot/spakit/pkg/async        - Futures for asynchronous work
//
// # Integrations
//
//	github.com/dmitrymomot/spakit/integration/storage/redis - Redis-backed session storage
//
// # Applications
//
//	github.com/dmitrymomot/spakit/app/passwordless - Magic-link login and account creation
//	github.com/dmitrymomot/spakit/app/shell        - Terminal client wiring every package together
//	github.com/dmitrymomot/spakit/cmd/spakit       - Entry point for the terminal client
//
// # Quick Start
//
//	store := session.NewStore(storage.NewMemory())
//	routes := router.New(router.WithNotFound(notFound))
//	routes.Handle(router.Exact("/"), router.Guard(store, home, access))
//
//	history, _ := navigation.NewMemoryHistory("http://localhost/")
//	nav := navigation.New(routes, history, mount)
//	nav.Start(ctx)
package spakit
