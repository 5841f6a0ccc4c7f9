// Package lifecycle holds shared timeouts for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a single lifecycle hook may take.
const DefaultTimeout = 30 * time.Second
