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

// Package adapters_test verifies the SDK-backed adapters against a mock
// engine: SSO token exchange, scheduling policy resolution and the cluster
// CRUD calls, wire format included.
package adapters_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/blang/semver"
	"github.com/kelu27/pulumi-ovirt/pkg/config"
	"github.com/kelu27/pulumi-ovirt/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitorsalgado/mocha/v3"
	"github.com/vitorsalgado/mocha/v3/expect"
	"github.com/vitorsalgado/mocha/v3/params"
	"github.com/vitorsalgado/mocha/v3/reply"

	"github.com/pulumi/pulumi-go-provider/integration"
	"github.com/pulumi/pulumi/sdk/v3/go/property"
)

const (
	clusterID          = "f3a2b8c4-1111-2222-3333-444455556666"
	schedulingPolicyID = "b4ed121a-aaaa-bbbb-cccc-ddddeeee0001"
)

const clusterInitialXML = `<cluster href="/ovirt-engine/api/clusters/` + clusterID + `" id="` + clusterID + `">
	<name>production</name>
	<description>Production workloads</description>
	<ballooning_enabled>true</ballooning_enabled>
	<scheduling_policy id="` + schedulingPolicyID + `"><name>evenly_distributed</name></scheduling_policy>
	<data_center id="dc-1"><name>mydatacenter</name></data_center>
</cluster>`

const clusterUpdatedXML = `<cluster href="/ovirt-engine/api/clusters/` + clusterID + `" id="` + clusterID + `">
	<name>production</name>
	<description>Production workloads, updated</description>
	<ballooning_enabled>true</ballooning_enabled>
	<scheduling_policy id="` + schedulingPolicyID + `"><name>evenly_distributed</name></scheduling_policy>
	<data_center id="dc-1"><name>mydatacenter</name></data_center>
</cluster>`

const schedulingPoliciesXML = `<scheduling_policies>
	<scheduling_policy href="/ovirt-engine/api/schedulingpolicies/` + schedulingPolicyID + `" id="` + schedulingPolicyID + `">
		<name>evenly_distributed</name>
	</scheduling_policy>
	<scheduling_policy href="/ovirt-engine/api/schedulingpolicies/b4ed121a-0002" id="b4ed121a-0002">
		<name>power_saving</name>
	</scheduling_policy>
</scheduling_policies>`

// newEngineMock starts a mocha server with the oVirt SSO endpoint stubbed and
// returns a provider config pointing at it.
func newEngineMock(t *testing.T) (*mocha.Mocha, *config.Config) {
	t.Helper()

	mock := mocha.New(t)
	mock.Start()
	t.Cleanup(func() { _ = mock.Close() })

	mock.AddMocks(
		mocha.Post(expect.URLPath("/ovirt-engine/sso/oauth/token")).
			Reply(reply.OK().
				Header("Content-Type", "application/json").
				BodyString(`{"access_token":"engine-token","scope":"ovirt-app-api","exp":"9999999999"}`)),
	)

	return mock, &config.Config{
		EngineURL:      mock.URL() + "/ovirt-engine/api",
		EngineUser:     "admin@internal",
		EnginePassword: "secret",
		Insecure:       true,
	}
}

//nolint:paralleltest // shares a mock server across lifecycle phases
func TestClusterAdapterHealthyLifeCycle(t *testing.T) {
	mock, engineConfig := newEngineMock(t)

	mock.AddMocks(
		// reply.OK().BodyString stores a single-use reader, but this endpoint
		// is hit once per lifecycle phase; build a fresh body on every call.
		mocha.Get(expect.URLPath("/ovirt-engine/api/schedulingpolicies")).
			Reply(reply.Function(func(*http.Request, reply.M, params.P) (*reply.Response, error) {
				return &reply.Response{
					Status: http.StatusOK,
					Header: http.Header{"Content-Type": []string{"application/xml"}},
					Body:   strings.NewReader(schedulingPoliciesXML),
				}, nil
			})),
		mocha.Post(expect.URLPath("/ovirt-engine/api/clusters")).
			Reply(reply.Created().
				Header("Content-Type", "application/xml").
				BodyString(clusterInitialXML)),
		mocha.Put(expect.URLPath("/ovirt-engine/api/clusters/"+clusterID)).
			Reply(reply.OK().
				Header("Content-Type", "application/xml").
				BodyString(clusterUpdatedXML)),
		mocha.Delete(expect.URLPath("/ovirt-engine/api/clusters/"+clusterID)).
			Reply(reply.OK()),
	)

	server, err := integration.NewServer(
		t.Context(),
		provider.Name,
		semver.Version{Minor: 1},
		integration.WithProvider(provider.NewProviderWithConfig(engineConfig)),
	)
	require.NoError(t, err)

	integration.LifeCycleTest{
		Resource: "ovirt:cluster:Cluster",
		Create: integration.Operation{
			Inputs: property.NewMap(map[string]property.Value{
				"name":             property.New("production"),
				"description":      property.New("Production workloads"),
				"ballooning":       property.New(true),
				"schedulingPolicy": property.New("evenly_distributed"),
				"datacenter":       property.New("mydatacenter"),
			}),
			Hook: func(in, out property.Map) {
				assert.Equal(t, clusterID, out.Get("clusterId").AsString())
				assert.Equal(t, "production", out.Get("name").AsString())
				assert.Equal(t, "evenly_distributed", out.Get("schedulingPolicy").AsString())
				assert.Equal(t, "mydatacenter", out.Get("datacenter").AsString())
			},
		},
		Updates: []integration.Operation{{
			Inputs: property.NewMap(map[string]property.Value{
				"name":             property.New("production"),
				"description":      property.New("Production workloads, updated"),
				"ballooning":       property.New(true),
				"schedulingPolicy": property.New("evenly_distributed"),
				"datacenter":       property.New("mydatacenter"),
			}),
			Hook: func(in, out property.Map) {
				assert.Equal(t, "Production workloads, updated", out.Get("description").AsString())
			},
		}},
	}.Run(t, server)

	// The engine must have seen the SSO exchange and each CRUD call.
	mock.AssertCalled(t)
}
