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

// Package cluster_test contains lifecycle tests for Cluster resource
// operations.
//
// These tests verify full create/update/delete cycles using
// integration.LifeCycleTest against an in-memory fake engine.
package cluster_test

import (
	"testing"

	"github.com/blang/semver"
	"github.com/kelu27/pulumi-ovirt/pkg/provider"
	"github.com/kelu27/pulumi-ovirt/pkg/provider/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi-go-provider/integration"
	"github.com/pulumi/pulumi/sdk/v3/go/property"
)

const (
	clusterNameTest    = "production"
	clusterNameRenamed = "production-east"
	descriptionInitial = "Production workloads"
	descriptionUpdated = "Production workloads, balloon disabled"
	cpuTypeTest        = "Intel SandyBridge Family"
)

func newLifecycleServer(t *testing.T, fake *resources.FakeClusterOps) integration.Server {
	t.Helper()

	server, err := integration.NewServer(
		t.Context(),
		provider.Name,
		semver.Version{Minor: 1},
		integration.WithProvider(provider.NewProviderWithOperations(fake)),
	)
	require.NoError(t, err)
	return server
}

func TestClusterHealthyLifeCycle(t *testing.T) {
	t.Parallel()

	fake := resources.NewFakeClusterOps()
	server := newLifecycleServer(t, fake)

	integration.LifeCycleTest{
		Resource: "ovirt:cluster:Cluster",
		Create: integration.Operation{
			Inputs: property.NewMap(map[string]property.Value{
				"name":        property.New(clusterNameTest),
				"description": property.New(descriptionInitial),
				"cpuType":     property.New(cpuTypeTest),
				"ballooning":  property.New(true),
			}),
			Hook: func(in, out property.Map) {
				assert.Equal(t, clusterNameTest, out.Get("name").AsString())
				assert.Equal(t, descriptionInitial, out.Get("description").AsString())
				assert.Equal(t, cpuTypeTest, out.Get("cpuType").AsString())
				assert.True(t, out.Get("ballooning").AsBool())
				assert.NotEmpty(t, out.Get("clusterId").AsString())
			},
		},
		Updates: []integration.Operation{{
			Inputs: property.NewMap(map[string]property.Value{
				"name":        property.New(clusterNameTest),
				"description": property.New(descriptionUpdated),
				"cpuType":     property.New(cpuTypeTest),
				"ballooning":  property.New(false),
			}),
			Hook: func(in, out property.Map) {
				assert.Equal(t, descriptionUpdated, out.Get("description").AsString())
				assert.False(t, out.Get("ballooning").AsBool())
			},
		}},
	}.Run(t, server)

	calls := fake.Calls()
	assert.Contains(t, calls, "create:"+clusterNameTest)
	assert.Contains(t, calls, "update:"+clusterNameTest)
	assert.Contains(t, calls, "delete:"+clusterNameTest, "cleanup should remove the cluster")
}

func TestClusterNameChangeTriggersReplace(t *testing.T) {
	t.Parallel()

	fake := resources.NewFakeClusterOps()
	server := newLifecycleServer(t, fake)

	integration.LifeCycleTest{
		Resource: "ovirt:cluster:Cluster",
		Create: integration.Operation{
			Inputs: property.NewMap(map[string]property.Value{
				"name":    property.New(clusterNameTest),
				"cpuType": property.New(cpuTypeTest),
			}),
			Hook: func(in, out property.Map) {
				assert.Equal(t, clusterNameTest, out.Get("name").AsString())
			},
		},
		Updates: []integration.Operation{{
			// Changing the name must replace the cluster on the engine.
			Inputs: property.NewMap(map[string]property.Value{
				"name":    property.New(clusterNameRenamed),
				"cpuType": property.New(cpuTypeTest),
			}),
			Hook: func(in, out property.Map) {
				assert.Equal(t, clusterNameRenamed, out.Get("name").AsString())
			},
		}},
	}.Run(t, server)

	calls := fake.Calls()

	createOldIdx, deleteOldIdx, createNewIdx := -1, -1, -1
	for i, call := range calls {
		switch call {
		case "create:" + clusterNameTest:
			if createOldIdx == -1 {
				createOldIdx = i
			}
		case "delete:" + clusterNameTest:
			deleteOldIdx = i
		case "create:" + clusterNameRenamed:
			createNewIdx = i
		}
	}

	assert.NotEqual(t, -1, createOldIdx, "initial cluster should have been created")
	assert.NotEqual(t, -1, createNewIdx, "replacement cluster should have been created")
	assert.NotEqual(t, -1, deleteOldIdx, "old cluster should have been deleted during replacement")
	assert.Less(t, createOldIdx, createNewIdx, "original cluster created before replacement")
}

func TestClusterUpdateWithoutChangesMakesNoEngineCalls(t *testing.T) {
	t.Parallel()

	fake := resources.NewFakeClusterOps()
	server := newLifecycleServer(t, fake)

	inputs := property.NewMap(map[string]property.Value{
		"name":        property.New(clusterNameTest),
		"description": property.New(descriptionInitial),
	})

	integration.LifeCycleTest{
		Resource: "ovirt:cluster:Cluster",
		Create: integration.Operation{
			Inputs: inputs,
		},
		Updates: []integration.Operation{{
			// Same inputs: Diff reports no changes, so no update reaches the engine.
			Inputs: inputs,
		}},
	}.Run(t, server)

	assert.NotContains(t, fake.Calls(), "update:"+clusterNameTest)
}
