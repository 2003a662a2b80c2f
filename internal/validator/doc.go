// Package validator provides a client for the Nu HTML checker service.
//
// The service is an optional collaborator: a markup audit should still
// complete when the validator is unreachable. Callers therefore receive
// an error only for transport or decoding failures and decide themselves
// whether to degrade; the client never fails a whole check on its own.
package validator
