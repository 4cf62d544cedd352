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

package resources

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kelu27/pulumi-ovirt/pkg/ovirt"
)

// Ensure FakeClusterOps implements the ClusterOperations interface
var _ ovirt.ClusterOperations = (*FakeClusterOps)(nil)

// FakeClusterOps is an in-memory ovirt.ClusterOperations used by lifecycle
// tests. Defined outside *_test.go for cross-package reuse.
type FakeClusterOps struct {
	mu       sync.Mutex
	clusters map[string]*ovirt.ClusterOutputs // keyed by engine ID
	calls    []string
}

// NewFakeClusterOps creates an empty fake engine.
func NewFakeClusterOps() *FakeClusterOps {
	return &FakeClusterOps{
		clusters: map[string]*ovirt.ClusterOutputs{},
	}
}

// Calls returns the operations performed so far, in order, as "op:name" entries.
func (fake *FakeClusterOps) Calls() []string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]string(nil), fake.calls...)
}

// Create stores a new cluster under a fresh engine ID.
func (fake *FakeClusterOps) Create(_ context.Context, inputs ovirt.ClusterInputs) (*ovirt.ClusterOutputs, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	for _, existing := range fake.clusters {
		if existing.Name == inputs.Name {
			return nil, fmt.Errorf("cluster %s already exists", inputs.Name)
		}
	}

	outputs := &ovirt.ClusterOutputs{
		ClusterInputs: inputs,
		ClusterID:     uuid.NewString(),
	}
	fake.clusters[outputs.ClusterID] = outputs
	fake.calls = append(fake.calls, "create:"+inputs.Name)

	result := *outputs
	return &result, nil
}

// Get looks a cluster up by name.
func (fake *FakeClusterOps) Get(_ context.Context, name string) (*ovirt.ClusterOutputs, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	fake.calls = append(fake.calls, "get:"+name)
	for _, existing := range fake.clusters {
		if existing.Name == name {
			result := *existing
			return &result, nil
		}
	}
	return nil, fmt.Errorf("cluster %s: %w", name, ovirt.ErrClusterNotFound)
}

// Update replaces the desired state of the cluster with the given engine ID.
func (fake *FakeClusterOps) Update(_ context.Context, id string, inputs ovirt.ClusterInputs) (*ovirt.ClusterOutputs, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	existing, ok := fake.clusters[id]
	if !ok {
		return nil, fmt.Errorf("cluster %s: %w", id, ovirt.ErrClusterNotFound)
	}

	existing.ClusterInputs = inputs
	fake.calls = append(fake.calls, "update:"+inputs.Name)

	result := *existing
	return &result, nil
}

// Delete removes the cluster with the given engine ID.
func (fake *FakeClusterOps) Delete(_ context.Context, id string) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	existing, ok := fake.clusters[id]
	if !ok {
		return fmt.Errorf("cluster %s: %w", id, ovirt.ErrClusterNotFound)
	}

	delete(fake.clusters, id)
	fake.calls = append(fake.calls, "delete:"+existing.Name)
	return nil
}
