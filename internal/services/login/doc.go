// Package login orchestrates the QR login flow: gateway session, ticket
// exchange, phase publication, and token persistence.
package login
