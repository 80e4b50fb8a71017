// Package commands defines the cordlink CLI: login, logout, and token.
package commands
