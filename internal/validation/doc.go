// Package validation turns raw user payloads into normalized domain patches.
//
// Rules are declared as go-playground/validator struct tags on explicit
// request types, one per Mode. Validation stops at the first violation and
// reports it as a *domain.ValidationError whose message names the offending
// field, for example `"social.twitter" must be a valid uri`.
package validation
