// Package common contains shared constants and sentinel errors used across
// tasklist components.
package common

// TokenHeaderName is the HTTP header carrying the raw signed access token.
// The value is sent verbatim, without an authorization scheme prefix.
const TokenHeaderName = "token"
