// Package passwordless talks to the magic-link auth API.
//
// Access drives the sign-in form: it asks the server to mail a link, and when
// the email is unknown it offers to create the account first, asking for a
// username. Validation failures come back as *FieldError so a form can attach
// the message to the right input.
package passwordless
