// Package storage provides content-addressable storage for build artifacts.
// Incremental builds use it to reuse rendered post fragments whose source
// content has not changed.
package storage

import (
	"context"
	"fmt"
	"time"
)

// Store provides content-addressable storage for build artifacts.
// Objects are stored by their content hash, enabling deduplication and
// cheap change detection.
type Store interface {
	// Put stores an object and returns its content hash.
	// If the object already exists, it returns the existing hash without writing.
	Put(ctx context.Context, obj *Object) (hash string, err error)

	// Get retrieves an object by its content hash.
	// Returns ErrNotFound if the object doesn't exist.
	Get(ctx context.Context, hash string) (*Object, error)

	// Close releases any resources held by the store.
	Close() error
}

// Object represents a stored artifact with its metadata.
type Object struct {
	// Hash is the content hash (SHA256) of the source the artifact was
	// derived from. When empty, Put hashes Data instead.
	Hash string

	// Type identifies the kind of object.
	Type ObjectType

	// Size is the size of the data in bytes.
	Size int64

	// Data is the object content.
	Data []byte

	// Metadata stores additional key-value pairs.
	Metadata Metadata
}

// Metadata stores object metadata.
type Metadata struct {
	CreatedAt    time.Time
	LastAccessed time.Time
	Custom       map[string]string
}

// ObjectType identifies the kind of stored object.
type ObjectType string

const (
	// ObjectTypeRenderedPost is a rendered, heading-annotated post fragment.
	ObjectTypeRenderedPost ObjectType = "rendered_post"
)

// ErrNotFound is returned when an object doesn't exist.
type ErrNotFound struct {
	Hash string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("object not found: %s", e.Hash)
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	_, ok := err.(ErrNotFound)
	return ok
}
