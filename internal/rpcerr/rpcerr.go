// Package rpcerr implements the typed RpcError surface: every error that
// crosses a component boundary in this module is classified into one of a
// fixed set of kinds so that callers can branch on it without
// string-matching.
package rpcerr

import (
	"fmt"
	"strings"
)

// Kind is the tag of the RpcError sum type.
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindHttpOutcall  Kind = "HttpOutcallError"
	KindJsonRpc      Kind = "JsonRpcError"
	KindParse        Kind = "ParseError"
	KindInconsistent Kind = "InconsistentResponse"
	KindText         Kind = "Text"
)

// ProviderOutcome pairs a provider identifier with the error it returned,
// used to carry every (provider, result) pair in an InconsistentResponse.
type ProviderOutcome struct {
	Provider string
	Err      error
}

// Error is the concrete RpcError value. Only the fields relevant to Kind are
// populated; this mirrors a Rust-style enum without requiring one type per
// variant.
type Error struct {
	Kind     Kind
	Code     int64
	Message  string
	Outcomes []ProviderOutcome
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHttpOutcall, KindJsonRpc:
		return fmt.Sprintf("%s: code=%d message=%s", e.Kind, e.Code, e.Message)
	case KindInconsistent:
		parts := make([]string, 0, len(e.Outcomes))
		for _, o := range e.Outcomes {
			parts = append(parts, fmt.Sprintf("%s=%v", o.Provider, o.Err))
		}
		return fmt.Sprintf("%s: [%s]", e.Kind, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Is lets errors.Is match on Kind alone, e.g. errors.Is(err, &Error{Kind: KindValidation}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func HttpOutcall(code int64, message string) *Error {
	return &Error{Kind: KindHttpOutcall, Code: code, Message: message}
}

func JsonRpc(code int64, message string) *Error {
	return &Error{Kind: KindJsonRpc, Code: code, Message: message}
}

func Parse(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

func Text(format string, args ...any) *Error {
	return &Error{Kind: KindText, Message: fmt.Sprintf(format, args...)}
}

func Inconsistent(outcomes []ProviderOutcome) *Error {
	return &Error{Kind: KindInconsistent, Outcomes: outcomes}
}
