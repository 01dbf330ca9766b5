// Package response normalizes HTTP responses from JSON APIs into one success
// shape (*Response) and one failure shape (*Error).
//
// # Body policy
//
// The body is read in full and interpreted as JSON when it parses; otherwise
// as trimmed text. For failures an empty body falls back to the status text,
// so an error always carries a human-readable message.
//
// # Classification
//
// Statuses below 400 succeed and everything else fails, using the status the
// transport reported. Normalize does not second-guess it.
//
//	res, err := response.Normalize(httpResp, response.WithUnauthorized(clearSession))
//	if err != nil {
//		if response.IsNotFound(err) {
//			// offer to create an account
//		}
//		var apiErr *response.Error
//		if errors.As(err, &apiErr) {
//			fields := apiErr.FieldErrors() // {"email": "Email taken"}
//		}
//		return err
//	}
//	var user User
//	_ = res.Decode(&user)
//
// # Side effects
//
// A 401 runs the WithUnauthorized hook before the error is returned, which the
// HTTP client uses to clear the persisted session so a stale token is never
// silently retried.
package response
