// Package httpclient talks to the JSON API behind the application.
//
// Every request goes through response.Normalize, so callers always receive
// either a *response.Response or a *response.Error, including for network
// failures (wrapped as response.ErrTransport).
//
// When a Session is configured the client attaches
// "Authorization: Bearer <token>" while a session is active and clears the
// session on any 401, so a stale token is never retried.
//
//	c, err := httpclient.New("https://api.example.com",
//		httpclient.WithSession(store),
//		httpclient.WithLogger(log),
//	)
//	res, err := c.Post(ctx, "/api/send-magic-link", map[string]string{"email": email}, nil)
package httpclient
