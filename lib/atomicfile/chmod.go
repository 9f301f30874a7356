// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"fmt"
	"os/exec"
	"strings"
)

// ChmodExpr changes permissions using a chmod(1) mode expression such
// as "+X" or "g+rw,o-w", optionally recursively. It shells out to the
// system chmod: os.Chmod takes only absolute numeric modes, and a
// native recursive walk is much slower than chmod -R on large trees.
// POSIX platforms only.
func ChmodExpr(path, modeExpression string, recursive bool) error {
	arguments := make([]string, 0, 3)
	if recursive {
		arguments = append(arguments, "-R")
	}
	arguments = append(arguments, modeExpression, path)

	output, err := exec.Command("chmod", arguments...).CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("chmod %s %s: %w: %s", modeExpression, path, err, detail)
		}
		return fmt.Errorf("chmod %s %s: %w", modeExpression, path, err)
	}
	return nil
}
