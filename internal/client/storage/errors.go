package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no usable authentication record exists.
	// Возвращается и для отсутствующей, и для повреждённой/неполной записи -
	// для вызывающего кода это одно и то же состояние "absent".
	ErrAuthNotFound = errors.New("authentication record not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
