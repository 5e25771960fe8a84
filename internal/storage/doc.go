// Package storage abstracts file persistence behind a single interface with
// two backends: the local filesystem under UPLOAD_ROOT, and S3 or any
// S3-compatible service when S3_BUCKET is set.
//
// Object keys are generated from random UUIDs, never from user-supplied
// names, so uploads cannot collide or escape their directory. The original
// filename survives only in sanitized form as metadata.
package storage
