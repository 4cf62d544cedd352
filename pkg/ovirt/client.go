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

// Package ovirt provides interfaces and domain types for interacting with an oVirt engine.
package ovirt

import (
	"context"
	"errors"
)

// ErrSchedulingPolicyNotFound is returned when a scheduling policy cannot be resolved by name.
var ErrSchedulingPolicyNotFound = errors.New("scheduling policy not found")

// SchedulingPolicyRef identifies a scheduling policy on the engine.
type SchedulingPolicyRef struct {
	ID   string
	Name string
}

// Client is the general interface for engine-wide lookups that cluster
// reconciliation needs beyond the clusters service itself.
type Client interface {
	// SchedulingPolicyByName resolves a scheduling policy by its name.
	SchedulingPolicyByName(ctx context.Context, name string) (*SchedulingPolicyRef, error)

	// SchedulingPolicyName returns the name of the scheduling policy with the given ID.
	SchedulingPolicyName(ctx context.Context, id string) (string, error)

	// DataCenterName returns the name of the data center with the given ID.
	DataCenterName(ctx context.Context, id string) (string, error)

	// NetworkName returns the name of the network with the given ID.
	NetworkName(ctx context.Context, id string) (string, error)
}
