// Package errors provides structured error handling for coretools.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: SDK resolution errors
//   - 2XX: Native module loading errors
//   - 3XX: Native runtime errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategorySDK indicates SDK resolution errors.
	CategorySDK Category = "SDK"
	// CategoryModule indicates native module loading errors.
	CategoryModule Category = "MODULE"
	// CategoryNative indicates errors reported by or about the native runtime.
	CategoryNative Category = "NATIVE"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// SDK errors (100-199)
	ErrCodeSDKNotFound         = "ERR_101_SDK_NOT_FOUND"
	ErrCodeLibraryMissing      = "ERR_102_LIBRARY_MISSING"
	ErrCodeResolutionExhausted = "ERR_103_RESOLUTION_EXHAUSTED"
	ErrCodeConfigInvalid       = "ERR_104_CONFIG_INVALID"

	// Module errors (200-299)
	ErrCodeModuleNotFound   = "ERR_201_MODULE_NOT_FOUND"
	ErrCodeModuleLoadFailed = "ERR_202_MODULE_LOAD_FAILED"
	ErrCodeSymbolNotFound   = "ERR_203_SYMBOL_NOT_FOUND"

	// Native runtime errors (300-399)
	ErrCodeNativeInitFailed = "ERR_301_NATIVE_INIT_FAILED"
	ErrCodeModuleClosed     = "ERR_302_MODULE_CLOSED"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_SDK_NOT_FOUND")
	switch code[4] {
	case '1':
		return CategorySDK
	case '2':
		return CategoryModule
	case '3':
		return CategoryNative
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Candidate-level SDK errors are recoverable: the locator moves on.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeResolutionExhausted,
		ErrCodeModuleNotFound, ErrCodeModuleLoadFailed, ErrCodeSymbolNotFound:
		return SeverityFatal
	case ErrCodeSDKNotFound, ErrCodeLibraryMissing:
		return SeverityWarning
	default:
		return SeverityError
	}
}
