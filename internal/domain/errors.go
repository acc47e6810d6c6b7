package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports an unknown resource name or a record that does not
// match its lookup key.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "data tidak ditemukan"
	}
	return e.Resource + " tidak ditemukan"
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError rejects caller input before anything is compiled.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return e.Field + " " + e.Msg
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return e.Field + " tidak valid"
	}
	return "input tidak valid"
}

// InternalError is a fault on our side whose Msg is safe to show.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg == "" {
		return "terjadi kesalahan"
	}
	return e.Msg
}

func (e InternalError) Unwrap() error { return e.Err }

// StorageError carries a failure from the data store together with the
// status code the transport layer should answer with.
type StorageError struct {
	Msg    string
	Status int
	Err    error
}

func (e StorageError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return "storage error"
}

func (e StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// AsInternal extracts an InternalError from err's chain.
func AsInternal(err error) (InternalError, bool) {
	var target InternalError
	ok := errors.As(err, &target)
	return target, ok
}

// AsStorage extracts a StorageError from err's chain.
func AsStorage(err error) (StorageError, bool) {
	var target StorageError
	ok := errors.As(err, &target)
	return target, ok
}
