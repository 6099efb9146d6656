package models

import (
	"errors"
	"fmt"
)

var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrEmptyRoster     = errors.New("roster is empty")
	ErrInvalidInput    = errors.New("invalid input")
	ErrRecordExists    = errors.New("attendance record already exists")
	ErrSessionNotFound = errors.New("scan session not found")
)

// StorageError ห่อ error จาก record store; caller เป็นคนตัดสินใจ retry เอง
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
