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

package resources_test

import (
	"testing"

	"github.com/kelu27/pulumi-ovirt/pkg/provider/resources"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](value T) *T {
	return &value
}

func TestManagedDiffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		want     *bool
		have     *bool
		expected bool
	}{
		{name: "unmanaged ignores remote value", want: nil, have: ptr(true), expected: false},
		{name: "unmanaged ignores missing remote value", want: nil, have: nil, expected: false},
		{name: "managed against missing remote value", want: ptr(true), have: nil, expected: true},
		{name: "managed equal", want: ptr(true), have: ptr(true), expected: false},
		{name: "managed different", want: ptr(true), have: ptr(false), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, resources.ManagedDiffer(tt.want, tt.have))
		})
	}
}

func TestUnorderedEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, resources.UnorderedEqual([]string{"hwrng", "random"}, []string{"random", "hwrng"}))
	assert.True(t, resources.UnorderedEqual(nil, nil))
	assert.True(t, resources.UnorderedEqual([]string{}, nil))
	assert.False(t, resources.UnorderedEqual([]string{"hwrng"}, []string{"random"}))
	assert.False(t, resources.UnorderedEqual([]string{"hwrng"}, []string{"hwrng", "random"}))
}
