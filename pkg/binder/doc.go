// Package binder decodes HTTP requests into typed structs.
//
// JSON decodes the request body; Query fills fields tagged `query:"name"`
// from the URL. Both return ErrBinderNotApplicable when the request carries
// nothing for them, which lets handler.Wrap chain several binders.
package binder
