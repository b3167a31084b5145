// Package validator builds declarative input checks.
//
// Each rule constructor returns a Rule pairing a Check func with the error to
// report. Apply evaluates rules in order and aggregates every failure into
// ValidationErrors, which implements error:
//
//	err := validator.Apply(
//		validator.RequiredString("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// verrs.Fields(), verrs.Get("email")
//	}
package validator
