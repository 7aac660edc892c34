package solswap

import (
	"errors"
	"fmt"
)

// CustomError is a program error declared by the solswap program.
type CustomError struct {
	Code    uint32
	Name    string
	Message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s(%d): %s", e.Name, e.Code, e.Message)
}

// Is matches another *CustomError with the same code.
func (e *CustomError) Is(target error) bool {
	var other *CustomError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

var (
	ErrAmountZero      = &CustomError{6000, "AmountZero", "Amount must be greater than zero"}
	ErrInvalidTokenIn  = &CustomError{6001, "InvalidTokenIn", "Token account mint does not match expected mint"}
	ErrInvalidTokenOut = &CustomError{6002, "InvalidTokenOut", "Token account mint does not match expected mint"}
	ErrSameToken       = &CustomError{6003, "SameToken", "Token in and token out cannot be the same"}
)

var customErrors = map[uint32]*CustomError{
	ErrAmountZero.Code:      ErrAmountZero,
	ErrInvalidTokenIn.Code:  ErrInvalidTokenIn,
	ErrInvalidTokenOut.Code: ErrInvalidTokenOut,
	ErrSameToken.Code:       ErrSameToken,
}

// Framework errors raised by the Anchor runtime on behalf of the program.
var anchorErrors = map[uint32]*CustomError{
	100:  {100, "InstructionMissing", "8 byte instruction identifier not provided"},
	101:  {101, "InstructionFallbackNotFound", "Fallback functions are not supported"},
	102:  {102, "InstructionDidNotDeserialize", "The program could not deserialize the given instruction"},
	2000: {2000, "ConstraintMut", "A mut constraint was violated"},
	2001: {2001, "ConstraintHasOne", "A has one constraint was violated"},
	2003: {2003, "ConstraintRaw", "A raw constraint was violated"},
	2006: {2006, "ConstraintSeeds", "A seeds constraint was violated"},
	2014: {2014, "ConstraintTokenMint", "A token mint constraint was violated"},
	2015: {2015, "ConstraintTokenOwner", "A token owner constraint was violated"},
	3001: {3001, "AccountDiscriminatorNotFound", "No 8 byte discriminator was found on the account"},
	3002: {3002, "AccountDiscriminatorMismatch", "8 byte discriminator did not match what was expected"},
	3007: {3007, "AccountOwnedByWrongProgram", "The given account is owned by a different program than expected"},
	3010: {3010, "AccountNotSigner", "The given account did not sign"},
	3012: {3012, "AccountNotInitialized", "The program expected this account to be already initialized"},
}

// ErrorFromCode maps a custom program error code to its declared error.
// Unknown codes produce a generic *CustomError.
func ErrorFromCode(code uint32) *CustomError {
	if e, ok := customErrors[code]; ok {
		return e
	}
	if e, ok := anchorErrors[code]; ok {
		return e
	}
	return &CustomError{Code: code, Name: "Unknown", Message: fmt.Sprintf("unknown program error %d", code)}
}
