// Package validator checks request payloads against `validate` struct tags
// before they leave the client, producing the same field-to-message shape the
// API returns for 422 responses.
//
//	type signUp struct {
//		Email    string `json:"email" validate:"required;email;max:254"`
//		Username string `json:"username" validate:"required;username"`
//	}
//
//	if err := validator.ValidateStruct(&in); err != nil {
//		var verrs validator.ValidationErrors
//		errors.As(err, &verrs)
//		verrs.Fields() // map[email:must be a valid email address]
//	}
//
// Rules are separated by ';' and take parameters after ':'. Field names come
// from the json tag when there is one. Custom rules are added with
// RegisterValidator.
package validator
