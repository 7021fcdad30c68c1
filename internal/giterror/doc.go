// Package giterror provides error inspection capabilities for GitHub API errors.
// It centralizes the logic for classifying failures returned by the REST and
// GraphQL user lookups so callers can map them to sentinel errors without
// repeating string checks.
package giterror
