// Package api defines the request and response messages of the pantry.v1
// services. Messages travel as JSON; field names follow the protojson
// lowerCamelCase convention so that browser clients written against the
// Connect protocol work unchanged.
//
// Dates are YYYY-MM-DD strings. Money is a decimal string.
package api
