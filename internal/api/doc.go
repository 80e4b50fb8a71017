// Package api is the thin REST client for the one call this subsystem
// makes: exchanging a remote-auth ticket for an encrypted token.
package api
