// Copyright 2016-2023, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provider

import (
	"fmt"

	"github.com/kelu27/pulumi-ovirt/pkg/adapters"
	"github.com/kelu27/pulumi-ovirt/pkg/config"
	"github.com/kelu27/pulumi-ovirt/pkg/ovirt"
	"github.com/kelu27/pulumi-ovirt/pkg/provider/resources/cluster"
	p "github.com/pulumi/pulumi-go-provider"
	"github.com/pulumi/pulumi-go-provider/infer"
	"github.com/pulumi/pulumi/sdk/v3/go/common/tokens"
)

// Version is initialized by the Go linker to contain the semver of this build.
var Version = "0.1.0"

const Name string = "ovirt"

// Provider builds the provider with the configuration taken from the engine.
func Provider() p.Provider {
	return NewProviderWithConfig(nil)
}

// NewProviderWithConfig builds the provider around an explicit engine
// configuration. A nil config defers to the provider configuration supplied
// by the engine at runtime.
func NewProviderWithConfig(engineConfig *config.Config) p.Provider {
	engine := adapters.NewEngineAdapter(engineConfig)
	return NewProviderWithOperations(adapters.NewClusterAdapter(engine))
}

// NewProviderWithOperations builds the provider around the given cluster
// operations. Tests use it to substitute a fake engine.
func NewProviderWithOperations(clusterOps ovirt.ClusterOperations) p.Provider {
	// We tell the provider what resources it needs to support.
	prov, err := infer.NewProviderBuilder().
		WithResources(
			infer.Resource(&cluster.Cluster{ClusterOps: clusterOps}),
		).
		WithConfig(infer.Config(&config.Config{})).
		WithModuleMap(map[tokens.ModuleName]tokens.ModuleName{
			"provider": "index",
		}).
		Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build provider: %v", err))
	}

	return prov
}
