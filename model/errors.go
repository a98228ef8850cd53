package model

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Exit codes shared by the reporting and provisioning binaries:
//
//	0  success
//	1  usage error (bad flags, invalid dates)
//	2  authentication failure
//	3  permission failure
//	4  no billing export configured
//	5  BigQuery query rejected
//	6  provisioning failure
const (
	ExitOK         = 0
	ExitUsage      = 1
	ExitAuth       = 2
	ExitPermission = 3
	ExitNoExport   = 4
	ExitQuery      = 5
	ExitProvision  = 6
)

// AuthError means the ambient credentials are missing or expired
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("not authenticated with Google Cloud: %v\n\nPlease authenticate using one of these methods:\n  1. gcloud auth application-default login\n  2. gcloud auth login\n  3. Set GOOGLE_APPLICATION_CREDENTIALS environment variable", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// PermissionError means the caller lacks a required IAM role.
// Permission names the missing permission when it could be determined.
type PermissionError struct {
	Err        error
	Permission string
}

func (e *PermissionError) Error() string {
	msg := fmt.Sprintf("permission denied: %v", e.Err)
	if e.Permission != "" {
		msg += fmt.Sprintf("\n\nMissing permission: %s", e.Permission)
	}
	return msg + "\nAsk a billing administrator to grant the required role."
}

func (e *PermissionError) Unwrap() error { return e.Err }

// NotFoundError means a remote resource does not exist. For the billing
// export table this is an expected state, not a fatal condition.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s not found: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// QueryError means BigQuery rejected or failed the cost query
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("error querying BigQuery: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ProvisionError means dataset creation or deletion failed
type ProvisionError struct {
	Err  error
	Hint string
}

func (e *ProvisionError) Error() string {
	msg := fmt.Sprintf("provisioning failed: %v", e.Err)
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// ClassifyAPIError maps a Google API error onto the local taxonomy. Errors
// that carry no recognizable HTTP status pass through unchanged.
func ClassifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return &AuthError{Err: err}
		case http.StatusForbidden:
			return &PermissionError{Err: err}
		case http.StatusNotFound:
			return &NotFoundError{Resource: "resource", Err: err}
		}
	}
	return err
}

// ExitCode maps an error onto the documented exit codes
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		authErr      *AuthError
		permErr      *PermissionError
		notFoundErr  *NotFoundError
		queryErr     *QueryError
		provisionErr *ProvisionError
	)
	switch {
	case errors.As(err, &authErr):
		return ExitAuth
	case errors.As(err, &permErr):
		return ExitPermission
	case errors.As(err, &notFoundErr):
		return ExitNoExport
	case errors.As(err, &queryErr):
		return ExitQuery
	case errors.As(err, &provisionErr):
		return ExitProvision
	}
	return ExitUsage
}
