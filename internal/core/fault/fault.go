// Package fault defines the closed error taxonomy shared by every component.
// It classifies failures and renders them for display; retry policy belongs
// to callers.
package fault

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Code identifies a failure class. The set is closed; unmapped failures
// normalize to CodeUnknown.
type Code string

const (
	CodeWalletGeneration  Code = "WALLET_GENERATION_ERROR"
	CodeWalletRestoration Code = "WALLET_RESTORATION_ERROR"
	CodeInvalidSeedPhrase Code = "INVALID_SEED_PHRASE"
	CodeInvalidPIN        Code = "INVALID_PIN"
	CodeNetwork           Code = "NETWORK_ERROR"
	CodeAPI               Code = "API_ERROR"
	CodeTimeout           Code = "TIMEOUT_ERROR"
	CodeInsufficientFunds Code = "INSUFFICIENT_BALANCE"
	CodeInvalidAddress    Code = "INVALID_ADDRESS"
	CodeTransactionFailed Code = "TRANSACTION_FAILED"
	CodeStorage           Code = "STORAGE_ERROR"
	CodeEncryption        Code = "ENCRYPTION_ERROR"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeUnknown           Code = "UNKNOWN_ERROR"
)

// Error is a typed fault carrying a taxonomy code. Ephemeral: constructed at
// the failure site, consumed by the nearest boundary, never persisted.
type Error struct {
	Code      Code
	Message   string
	Details   string
	Timestamp time.Time
	cause     error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is allows errors.Is matching against another *Error by code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// New constructs a typed fault. It never fails itself.
func New(code Code, message string, details string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// Wrap attaches a taxonomy code to an underlying error, preserving the
// cause chain for errors.Is/As.
func Wrap(code Code, message string, cause error) *Error {
	e := New(code, message, "")
	if cause != nil {
		e.Details = cause.Error()
		e.cause = cause
	}
	return e
}

// From normalizes any error into a typed fault. Already-typed faults pass
// through unchanged; everything else maps to CodeUnknown.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	slog.Debug("normalizing untyped error", "error", err)
	return Wrap(CodeUnknown, "An unexpected error occurred", err)
}

// CodeOf returns the taxonomy code of err, or CodeUnknown.
func CodeOf(err error) Code {
	if f := From(err); f != nil {
		return f.Code
	}
	return CodeUnknown
}

// IsNetwork reports whether err is a transport-class failure.
func IsNetwork(err error) bool {
	switch CodeOf(err) {
	case CodeNetwork, CodeAPI, CodeTimeout:
		return true
	}
	return false
}

var userMessages = map[Code]string{
	CodeWalletGeneration:  "Failed to create the wallet. Please try again.",
	CodeWalletRestoration: "Failed to restore the wallet. Check your recovery phrase.",
	CodeInvalidSeedPhrase: "The recovery phrase is invalid.",
	CodeInvalidPIN:        "The PIN entered is incorrect.",
	CodeNetwork:           "Network connection failed. Check your connection and try again.",
	CodeAPI:               "The service is temporarily unavailable. Please try again later.",
	CodeTimeout:           "The request timed out. Please try again.",
	CodeInsufficientFunds: "Insufficient balance for this transaction.",
	CodeInvalidAddress:    "The destination address is invalid.",
	CodeTransactionFailed: "The transaction could not be completed.",
	CodeStorage:           "Failed to access local storage.",
	CodeEncryption:        "Failed to secure your data.",
	CodeValidation:        "The provided data is invalid.",
}

const genericUserMessage = "Something went wrong. Please try again."

// Message renders err for display. With userFriendly set it maps the code to
// a user-facing string; otherwise it returns the raw message verbatim.
func Message(err error, userFriendly bool) string {
	f := From(err)
	if f == nil {
		return ""
	}
	if !userFriendly {
		return f.Message
	}
	if msg, ok := userMessages[f.Code]; ok {
		return msg
	}
	return genericUserMessage
}

// UserMessage is shorthand for Message(err, true). It is the single
// translation point from fault code to display string.
func UserMessage(err error) string {
	return Message(err, true)
}
