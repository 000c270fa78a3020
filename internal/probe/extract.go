// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"bufio"
	"strings"
)

// ExtractValue scans combined output for the first line of the form
// "<observable>=<value>" and returns the value. The second result is false
// when no such line appears. Carriage returns are stripped so Windows
// targets parse the same way.
func ExtractValue(raw, observable string) (string, bool) {
	prefix := observable + "="
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):], true
		}
	}
	return "", false
}
