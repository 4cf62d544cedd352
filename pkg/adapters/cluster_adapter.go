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

package adapters

import (
	"context"
	"fmt"

	"github.com/kelu27/pulumi-ovirt/pkg/ovirt"
	ovirtsdk "github.com/ovirt/go-ovirt"
)

// Ensure ClusterAdapter implements the ClusterOperations interface
var _ ovirt.ClusterOperations = (*ClusterAdapter)(nil)

// ClusterAdapter implements ovirt.ClusterOperations using the EngineAdapter.
type ClusterAdapter struct {
	engineAdapter *EngineAdapter
}

// NewClusterAdapter creates a new ClusterAdapter wrapping the given EngineAdapter.
func NewClusterAdapter(engineAdapter *EngineAdapter) *ClusterAdapter {
	return &ClusterAdapter{engineAdapter: engineAdapter}
}

// buildEntity resolves the requested scheduling policy and translates the
// inputs into an SDK cluster object.
func (cluster *ClusterAdapter) buildEntity(ctx context.Context, inputs ovirt.ClusterInputs) (*ovirtsdk.Cluster, error) {
	var schedulingPolicyID string
	if inputs.SchedulingPolicy != nil {
		ref, err := cluster.engineAdapter.SchedulingPolicyByName(ctx, *inputs.SchedulingPolicy)
		if err != nil {
			return nil, err
		}
		schedulingPolicyID = ref.ID
	}

	return buildClusterEntity(inputs, schedulingPolicyID)
}

// Create creates a new cluster and returns its remote representation.
func (cluster *ClusterAdapter) Create(ctx context.Context, inputs ovirt.ClusterInputs) (*ovirt.ClusterOutputs, error) {
	if err := cluster.engineAdapter.Connect(ctx); err != nil {
		return nil, err
	}

	entity, err := cluster.buildEntity(ctx, inputs)
	if err != nil {
		return nil, err
	}

	resp, err := cluster.engineAdapter.clustersService().Add().Cluster(entity).Send()
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster %s: %w", inputs.Name, err)
	}

	added, ok := resp.Cluster()
	if !ok {
		return nil, fmt.Errorf("engine returned no cluster for %s", inputs.Name)
	}

	return flattenCluster(ctx, cluster.engineAdapter, added)
}

// Get retrieves an existing cluster by its name.
func (cluster *ClusterAdapter) Get(ctx context.Context, name string) (*ovirt.ClusterOutputs, error) {
	if err := cluster.engineAdapter.Connect(ctx); err != nil {
		return nil, err
	}

	resp, err := cluster.engineAdapter.clustersService().
		List().
		Search(fmt.Sprintf("name=%s", name)).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to search for cluster %s: %w", name, err)
	}

	clusters, ok := resp.Clusters()
	if !ok || len(clusters.Slice()) == 0 {
		return nil, fmt.Errorf("cluster %s: %w", name, ovirt.ErrClusterNotFound)
	}

	return flattenCluster(ctx, cluster.engineAdapter, clusters.Slice()[0])
}

// Update updates an existing cluster identified by its engine ID.
func (cluster *ClusterAdapter) Update(ctx context.Context, id string, inputs ovirt.ClusterInputs) (*ovirt.ClusterOutputs, error) {
	if err := cluster.engineAdapter.Connect(ctx); err != nil {
		return nil, err
	}

	entity, err := cluster.buildEntity(ctx, inputs)
	if err != nil {
		return nil, err
	}

	resp, err := cluster.engineAdapter.clustersService().
		ClusterService(id).
		Update().
		Cluster(entity).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to update cluster %s: %w", inputs.Name, err)
	}

	updated, ok := resp.Cluster()
	if !ok {
		return nil, fmt.Errorf("engine returned no cluster for %s", inputs.Name)
	}

	return flattenCluster(ctx, cluster.engineAdapter, updated)
}

// Delete removes an existing cluster identified by its engine ID.
func (cluster *ClusterAdapter) Delete(ctx context.Context, id string) error {
	if err := cluster.engineAdapter.Connect(ctx); err != nil {
		return err
	}

	if _, err := cluster.engineAdapter.clustersService().ClusterService(id).Remove().Send(); err != nil {
		return fmt.Errorf("failed to delete cluster %s: %w", id, err)
	}

	return nil
}
