package errors

import "fmt"

// Config errors

func ConfigNotFound(path string) *DocWikiError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DocWikiError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("path", path)
}

func DirectoryNotFound(role, path string) *DocWikiError {
	return New(CategoryConfig, SeverityFatal, role+" directory not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocWikiError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Per-file errors

func ReadFailed(path string, cause error) *DocWikiError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "failed to read file").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *DocWikiError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "failed to write file").
		WithContext("path", path)
}

func DecodeFailed(path string) *DocWikiError {
	return New(CategoryDecode, SeverityError, "file is not valid UTF-8").
		WithContext("path", path)
}

// Command outcome errors

func SyncIncomplete(failed int) *DocWikiError {
	return New(CategoryValidation, SeverityError, fmt.Sprintf("sync completed with %d failed file(s)", failed))
}

func WikiInvalid(errCount, warnCount int, strict bool) *DocWikiError {
	return New(CategoryValidation, SeverityError,
		fmt.Sprintf("wiki validation failed: %d error(s), %d warning(s)", errCount, warnCount)).
		WithContext("strict", strict)
}

func BrokenLinks(count int) *DocWikiError {
	return New(CategoryValidation, SeverityError, fmt.Sprintf("found %d broken link(s)", count))
}

// Git errors

func GitStatusFailed(root string, cause error) *DocWikiError {
	return Wrap(cause, CategoryGit, SeverityFatal, "failed to read git status").
		WithContext("root", root)
}

// Internal errors

func InternalError(message string, cause error) *DocWikiError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
