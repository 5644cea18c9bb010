// Package blob stores invoice documents in object storage. Two drivers are
// provided: S3 (AWS S3 or any S3-compatible server such as MinIO) and an
// in-process memory store for development and tests.
package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Driver names the storage backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverS3     Driver = "s3"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("blob not found")

// Store is the minimal object store surface the archive needs. Put overwrites
// an existing object.
type Store interface {
	Driver() Driver
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ParseDriver converts a configuration value into a Driver.
func ParseDriver(s string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(s))) {
	case DriverMemory, "":
		return DriverMemory, nil
	case DriverS3:
		return DriverS3, nil
	default:
		return "", fmt.Errorf("unknown blob driver %q", s)
	}
}

func validateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("empty key")
	case strings.HasPrefix(key, "/"):
		return fmt.Errorf("invalid absolute key %q", key)
	case strings.Contains(key, ".."):
		return fmt.Errorf("invalid key %q contains '..'", key)
	}
	return nil
}
