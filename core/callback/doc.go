// Package callback completes a magic-link sign-in.
//
// The auth server redirects back to /callback with the outcome in the URL
// fragment. On success the fragment carries token, expires_at, user.id,
// user.email and user.username; the handler turns them into a session and
// persists it. On failure it carries error and, when the attempt can be
// repeated with a username (for example to create the account), retry_uri.
//
// Either way the handler answers with where to go next. Successful and
// abandoned callbacks exit to "/"; a confirmed retry leaves the app for the
// retry URL with the chosen username in its query.
package callback
