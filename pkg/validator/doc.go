// Package validator provides rule-based validation for user input captured on
// the client, such as login form fields.
//
// Rules are plain values combining a check with the error to report when the
// check fails. Apply runs a set of rules and returns the collected
// ValidationErrors, or nil when everything passes.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("email", form.Email),
//	    validator.ValidEmail("email", form.Email),
//	    validator.MinLen("password", form.Password, 6),
//	)
//	var verrs validator.ValidationErrors
//	if errors.As(err, &verrs) {
//	    for _, msg := range verrs.Get("email") {
//	        fmt.Println(msg)
//	    }
//	}
package validator
