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

// Package resources provides utility functions for resource management.
package resources

import (
	"golang.org/x/exp/slices"
)

// ManagedDiffer compares a desired value against the current one. A nil
// desired value is unmanaged and never differs.
func ManagedDiffer[T comparable](want, have *T) bool {
	if want == nil {
		return false
	}
	if have == nil {
		return true
	}
	return *want != *have
}

// UnorderedEqual reports whether two string lists hold the same elements
// regardless of order.
func UnorderedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	sortedA := slices.Clone(a)
	sortedB := slices.Clone(b)
	slices.Sort(sortedA)
	slices.Sort(sortedB)
	return slices.Equal(sortedA, sortedB)
}
