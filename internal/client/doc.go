// Package client talks to a running filesortd over its HTTP API.
package client
