/* Copyright 2025, Pulumi Corporation.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ovirt

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitVersion parses a compatibility version of the form "major.minor".
func SplitVersion(version string) (major int64, minor int64, err error) {
	parts := strings.SplitN(version, ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid compatibility version %q, expected major.minor", version)
	}

	if major, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid compatibility version %q: %w", version, err)
	}
	if minor, err = strconv.ParseInt(parts[1], 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid compatibility version %q: %w", version, err)
	}

	return major, minor, nil
}

// FormatVersion renders a major.minor pair as a compatibility version string.
func FormatVersion(major, minor int64) string {
	return fmt.Sprintf("%d.%d", major, minor)
}
