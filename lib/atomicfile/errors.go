// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import "errors"

var (
	// ErrBackupSuffixEmpty is returned when a backup operation is
	// requested with an empty suffix expression.
	ErrBackupSuffixEmpty = errors.New("backup suffix is empty")

	// ErrStagingMissing is returned by Replace when the populate
	// callback reported success but left nothing at the staging path.
	// The destination is untouched.
	ErrStagingMissing = errors.New("staging path missing after populate")

	// ErrDestinationConflict is returned when the destination exists
	// and the operation is not authorized to clobber it: replacing a
	// directory without Force, or moving onto an existing file with
	// backups disabled.
	ErrDestinationConflict = errors.New("destination exists and will not be clobbered")
)
