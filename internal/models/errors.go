package models

import "errors"

// ErrNotFound is returned by repositories when a lookup by id or key matches no row
var ErrNotFound = errors.New("record not found")
