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

// Package adapters provides concrete implementations of ovirt interfaces.
package adapters

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelu27/pulumi-ovirt/pkg/config"
	"github.com/kelu27/pulumi-ovirt/pkg/ovirt"
	ovirtsdk "github.com/ovirt/go-ovirt"

	p "github.com/pulumi/pulumi-go-provider"
	"github.com/pulumi/pulumi-go-provider/infer"
)

// Ensure EngineAdapter implements the ovirt.Client interface
var _ ovirt.Client = (*EngineAdapter)(nil)

// EngineAdapter owns the SDK connection to the oVirt engine and implements the
// engine-wide lookups in ovirt.Client. It handles lazy initialization of the
// underlying connection.
type EngineAdapter struct {
	once         sync.Once
	initErr      error
	EngineConfig *config.Config
	conn         *ovirtsdk.Connection
}

// NewEngineAdapter creates a new EngineAdapter. A nil config means the
// provider configuration is taken from the request context on first use.
func NewEngineAdapter(engineConfig *config.Config) *EngineAdapter {
	return &EngineAdapter{
		EngineConfig: engineConfig,
	}
}

// Connect initializes the engine connection if it hasn't been initialized yet.
func (engine *EngineAdapter) Connect(ctx context.Context) error {
	engine.once.Do(func() {
		p.GetLogger(ctx).Debugf("Connection is not initialized, initializing now")

		var engineConfig config.Config
		if engine.EngineConfig == nil {
			// If no config provided, get from context
			engineConfig = infer.GetConfig[config.Config](ctx)
		} else {
			engineConfig = *engine.EngineConfig
		}

		engine.conn, engine.initErr = newConnection(engineConfig)
	})

	if engine.initErr != nil {
		p.GetLogger(ctx).Errorf("Error creating oVirt connection: %v", engine.initErr)
		return engine.initErr
	}

	return nil
}

// newConnection creates a new oVirt SDK connection
func newConnection(engineConfig config.Config) (*ovirtsdk.Connection, error) {
	builder := ovirtsdk.NewConnectionBuilder().
		URL(engineConfig.EngineURL).
		Username(engineConfig.EngineUser).
		Password(engineConfig.EnginePassword).
		Insecure(engineConfig.Insecure)

	if engineConfig.CAFile != "" {
		builder = builder.CAFile(engineConfig.CAFile)
	}

	return builder.Build()
}

// clustersService returns the engine's clusters service. Connect must have
// succeeded before calling it.
func (engine *EngineAdapter) clustersService() *ovirtsdk.ClustersService {
	return engine.conn.SystemService().ClustersService()
}

// SchedulingPolicyByName resolves a scheduling policy by its name. The
// scheduling policies collection is not searchable, so the listing is
// filtered here.
func (engine *EngineAdapter) SchedulingPolicyByName(ctx context.Context, name string) (*ovirt.SchedulingPolicyRef, error) {
	if err := engine.Connect(ctx); err != nil {
		return nil, err
	}

	resp, err := engine.conn.SystemService().SchedulingPoliciesService().List().Send()
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduling policies: %w", err)
	}

	policies, ok := resp.Policies()
	if !ok {
		return nil, fmt.Errorf("scheduling policy %q: %w", name, ovirt.ErrSchedulingPolicyNotFound)
	}

	for _, policy := range policies.Slice() {
		if policyName, ok := policy.Name(); ok && policyName == name {
			return &ovirt.SchedulingPolicyRef{
				ID:   policy.MustId(),
				Name: policyName,
			}, nil
		}
	}

	return nil, fmt.Errorf("scheduling policy %q: %w", name, ovirt.ErrSchedulingPolicyNotFound)
}

// SchedulingPolicyName returns the name of the scheduling policy with the given ID.
func (engine *EngineAdapter) SchedulingPolicyName(ctx context.Context, id string) (string, error) {
	if err := engine.Connect(ctx); err != nil {
		return "", err
	}

	resp, err := engine.conn.SystemService().SchedulingPoliciesService().PolicyService(id).Get().Send()
	if err != nil {
		return "", fmt.Errorf("failed to get scheduling policy %s: %w", id, err)
	}

	policy, ok := resp.Policy()
	if !ok {
		return "", fmt.Errorf("scheduling policy %s: %w", id, ovirt.ErrSchedulingPolicyNotFound)
	}

	return policy.MustName(), nil
}

// DataCenterName returns the name of the data center with the given ID.
func (engine *EngineAdapter) DataCenterName(ctx context.Context, id string) (string, error) {
	if err := engine.Connect(ctx); err != nil {
		return "", err
	}

	resp, err := engine.conn.SystemService().DataCentersService().DataCenterService(id).Get().Send()
	if err != nil {
		return "", fmt.Errorf("failed to get data center %s: %w", id, err)
	}

	dataCenter, ok := resp.DataCenter()
	if !ok {
		return "", fmt.Errorf("data center %s not found", id)
	}

	return dataCenter.MustName(), nil
}

// NetworkName returns the name of the network with the given ID.
func (engine *EngineAdapter) NetworkName(ctx context.Context, id string) (string, error) {
	if err := engine.Connect(ctx); err != nil {
		return "", err
	}

	resp, err := engine.conn.SystemService().NetworksService().NetworkService(id).Get().Send()
	if err != nil {
		return "", fmt.Errorf("failed to get network %s: %w", id, err)
	}

	network, ok := resp.Network()
	if !ok {
		return "", fmt.Errorf("network %s not found", id)
	}

	return network.MustName(), nil
}
