// Package api implements the typed HTTP client for the giveaway platform
// backend. Every endpoint returns its payload wrapped in a common envelope;
// this package attaches the bearer credential, unwraps the envelope, and
// maps failures onto sentinel errors callers can match with errors.Is.
package api
