// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewObservableKey returns a fresh randomized observable key. The ULID
// suffix keeps concurrent or repeated runs from colliding with each other
// or with any pre-existing setting of the target.
func NewObservableKey() string {
	return "envrank.probe." + strings.ToLower(ulid.Make().String())
}
