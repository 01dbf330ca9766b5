// Package sanitizer normalizes values typed into forms and dialogs before
// they are validated or sent to the API.
//
//	email := sanitizer.Email("  Ann@Example.COM\n")   // "ann@example.com"
//	name := sanitizer.Username("ann.lee+news@x.com", 18) // "annlee"
//
// The functions never fail; they return the best cleaned value they can,
// possibly empty.
package sanitizer
