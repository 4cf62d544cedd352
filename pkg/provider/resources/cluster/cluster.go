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

// Package cluster provides the resource for managing oVirt clusters.
package cluster

import (
	"context"
	"errors"

	"github.com/kelu27/pulumi-ovirt/pkg/ovirt"
	"github.com/kelu27/pulumi-ovirt/pkg/provider/resources"

	p "github.com/pulumi/pulumi-go-provider"
	"github.com/pulumi/pulumi-go-provider/infer"
)

// Ensure Cluster implements the required interfaces
var (
	_ = (infer.CustomResource[ovirt.ClusterInputs, ovirt.ClusterOutputs])((*Cluster)(nil))
	_ = (infer.CustomDelete[ovirt.ClusterOutputs])((*Cluster)(nil))
	_ = (infer.CustomUpdate[ovirt.ClusterInputs, ovirt.ClusterOutputs])((*Cluster)(nil))
	_ = (infer.CustomRead[ovirt.ClusterInputs, ovirt.ClusterOutputs])((*Cluster)(nil))
	_ = (infer.CustomDiff[ovirt.ClusterInputs, ovirt.ClusterOutputs])((*Cluster)(nil))
	_ = infer.Annotated((*Cluster)(nil))
)

// Cluster represents an oVirt cluster resource
type Cluster struct {
	ClusterOps ovirt.ClusterOperations
}

// Create is used to create a new cluster resource
func (cluster *Cluster) Create(
	ctx context.Context,
	request infer.CreateRequest[ovirt.ClusterInputs],
) (response infer.CreateResponse[ovirt.ClusterOutputs], err error) {
	inputs := request.Inputs
	preview := request.DryRun

	logger := p.GetLogger(ctx)
	logger.Debugf("Creating cluster resource: %v", inputs)

	response = infer.CreateResponse[ovirt.ClusterOutputs]{
		ID:     request.Name,
		Output: ovirt.ClusterOutputs{ClusterInputs: inputs},
	}

	if err = inputs.Validate(ctx); err != nil {
		return response, err
	}

	if preview {
		return response, nil
	}

	if cluster.ClusterOps == nil {
		err = errors.New("ClusterOperations not configured")
		return response, err
	}

	var outputs *ovirt.ClusterOutputs
	if outputs, err = cluster.ClusterOps.Create(ctx, inputs); err != nil {
		return response, err
	}

	response.ID = outputs.ClusterID
	response.Output = *outputs

	return response, nil
}

// Read is used to read the state of a cluster resource
func (cluster *Cluster) Read(
	ctx context.Context,
	request infer.ReadRequest[ovirt.ClusterInputs, ovirt.ClusterOutputs],
) (response infer.ReadResponse[ovirt.ClusterInputs, ovirt.ClusterOutputs], err error) {
	logger := p.GetLogger(ctx)
	logger.Debugf(
		"Read called for Cluster with ID: %s, Inputs: %+v, State: %+v",
		request.ID,
		request.Inputs,
		request.State,
	)

	response.ID = request.ID
	response.Inputs = request.Inputs
	response.State = request.State

	if cluster.ClusterOps == nil {
		err = errors.New("ClusterOperations not configured")
		return response, err
	}

	name := request.Inputs.Name
	if name == "" {
		name = request.State.Name
	}
	if name == "" {
		logger.Warningf("Missing cluster name")
		err = errors.New("missing cluster name")
		return response, err
	}

	var outputs *ovirt.ClusterOutputs

	if outputs, err = cluster.ClusterOps.Get(ctx, name); err != nil {
		if errors.Is(err, ovirt.ErrClusterNotFound) {
			// Gone on the engine; an empty response marks the resource as deleted.
			return infer.ReadResponse[ovirt.ClusterInputs, ovirt.ClusterOutputs]{}, nil
		}
		return response, err
	}

	response.ID = outputs.ClusterID
	response.Inputs = outputs.ClusterInputs
	response.State = *outputs

	logger.Debugf("Returning updated state: %+v", response.State)
	return response, nil
}

// Delete is used to delete a cluster resource
func (cluster *Cluster) Delete(
	ctx context.Context,
	request infer.DeleteRequest[ovirt.ClusterOutputs],
) (response infer.DeleteResponse, err error) {
	logger := p.GetLogger(ctx)
	logger.Debugf("Deleting cluster resource: %v", request.State.Name)

	if cluster.ClusterOps == nil {
		return response, errors.New("ClusterOperations not configured")
	}

	if err := cluster.ClusterOps.Delete(ctx, request.State.ClusterID); err != nil {
		return response, err
	}
	logger.Debugf("Cluster resource %v deleted", request.State.Name)

	return response, nil
}

// Update is used to update a cluster resource
func (cluster *Cluster) Update(
	ctx context.Context,
	request infer.UpdateRequest[ovirt.ClusterInputs, ovirt.ClusterOutputs],
) (response infer.UpdateResponse[ovirt.ClusterOutputs], err error) {
	logger := p.GetLogger(ctx)
	logger.Debugf("Updating cluster resource: %v", request.ID)

	response.Output = request.State

	if err = request.Inputs.Validate(ctx); err != nil {
		return response, err
	}

	if request.DryRun {
		response.Output.ClusterInputs = request.Inputs
		return response, nil
	}

	if cluster.ClusterOps == nil {
		err = errors.New("ClusterOperations not configured")
		return response, err
	}

	var outputs *ovirt.ClusterOutputs
	if outputs, err = cluster.ClusterOps.Update(ctx, request.State.ClusterID, request.Inputs); err != nil {
		return response, err
	}

	response.Output = *outputs

	return response, nil
}

// Diff computes the difference between the current state and the desired
// state of a cluster resource. Unset inputs are unmanaged and never produce
// a diff, so a sparse program does not fight settings it does not track.
func (cluster *Cluster) Diff(
	_ context.Context,
	request infer.DiffRequest[ovirt.ClusterInputs, ovirt.ClusterOutputs],
) (response infer.DiffResponse, err error) {
	inputs := request.Inputs
	state := request.State

	diff := map[string]p.PropertyDiff{}

	if inputs.Name != state.Name {
		diff["name"] = p.PropertyDiff{Kind: p.UpdateReplace}
	}
	if resources.ManagedDiffer(inputs.Datacenter, state.Datacenter) {
		diff["datacenter"] = p.PropertyDiff{Kind: p.UpdateReplace}
	}
	// The management network cannot be changed once the cluster carries hosts.
	if resources.ManagedDiffer(inputs.Network, state.Network) {
		diff["network"] = p.PropertyDiff{Kind: p.UpdateReplace}
	}

	if resources.ManagedDiffer(inputs.Description, state.Description) {
		diff["description"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.Comment, state.Comment) {
		diff["comment"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.SwitchType, state.SwitchType) {
		diff["switchType"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.CPUArch, state.CPUArch) {
		diff["cpuArch"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.CPUType, state.CPUType) {
		diff["cpuType"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.Ballooning, state.Ballooning) {
		diff["ballooning"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.Gluster, state.Gluster) {
		diff["gluster"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.Virt, state.Virt) {
		diff["virt"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.ThreadsAsCores, state.ThreadsAsCores) {
		diff["threadsAsCores"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.Ksm, state.Ksm) {
		diff["ksm"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.KsmNuma, state.KsmNuma) {
		diff["ksmNuma"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.HaReservation, state.HaReservation) {
		diff["haReservation"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.TrustedService, state.TrustedService) {
		diff["trustedService"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.HostReason, state.HostReason) {
		diff["hostReason"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.VMReason, state.VMReason) {
		diff["vmReason"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.SpiceProxy, state.SpiceProxy) {
		diff["spiceProxy"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.FenceEnabled, state.FenceEnabled) {
		diff["fenceEnabled"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.FenceSkipIfSdActive, state.FenceSkipIfSdActive) {
		diff["fenceSkipIfSdActive"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.FenceSkipIfConnectivityBroken, state.FenceSkipIfConnectivityBroken) {
		diff["fenceSkipIfConnectivityBroken"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.FenceConnectivityThreshold, state.FenceConnectivityThreshold) {
		diff["fenceConnectivityThreshold"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.ResiliencePolicy, state.ResiliencePolicy) {
		diff["resiliencePolicy"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.MigrationBandwidth, state.MigrationBandwidth) {
		diff["migrationBandwidth"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.MigrationAutoConverge, state.MigrationAutoConverge) {
		diff["migrationAutoConverge"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.MigrationCompressed, state.MigrationCompressed) {
		diff["migrationCompressed"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.MigrationPolicy, state.MigrationPolicy) {
		diff["migrationPolicy"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.SerialPolicy, state.SerialPolicy) {
		diff["serialPolicy"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.SerialPolicyValue, state.SerialPolicyValue) {
		diff["serialPolicyValue"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.SchedulingPolicy, state.SchedulingPolicy) {
		diff["schedulingPolicy"] = p.PropertyDiff{Kind: p.Update}
	}
	if resources.ManagedDiffer(inputs.MemoryPolicy, state.MemoryPolicy) {
		diff["memoryPolicy"] = p.PropertyDiff{Kind: p.Update}
	}

	// The bandwidth limit only matters while the assignment method is custom.
	if inputs.MigrationBandwidth != nil && *inputs.MigrationBandwidth == ovirt.BandwidthCustom {
		if resources.ManagedDiffer(inputs.MigrationBandwidthLimit, state.MigrationBandwidthLimit) {
			diff["migrationBandwidthLimit"] = p.PropertyDiff{Kind: p.Update}
		}
	}

	if compatibilityVersionDiffer(inputs.CompatibilityVersion, state.CompatibilityVersion) {
		diff["compatibilityVersion"] = p.PropertyDiff{Kind: p.Update}
	}

	if inputs.RngSources != nil && !resources.UnorderedEqual(inputs.RngSources, state.RngSources) {
		diff["rngSources"] = p.PropertyDiff{Kind: p.Update}
	}

	response = p.DiffResponse{
		DeleteBeforeReplace: true,
		HasChanges:          len(diff) > 0,
		DetailedDiff:        diff,
	}

	return response, nil
}

// compatibilityVersionDiffer compares versions numerically, so "4.0" and
// "04.0" do not register as a change.
func compatibilityVersionDiffer(want, have *string) bool {
	if want == nil {
		return false
	}
	if have == nil {
		return true
	}

	wantMajor, wantMinor, err := ovirt.SplitVersion(*want)
	if err != nil {
		return *want != *have
	}
	haveMajor, haveMinor, err := ovirt.SplitVersion(*have)
	if err != nil {
		return *want != *have
	}

	return wantMajor != haveMajor || wantMinor != haveMinor
}

// Annotate is used to annotate the cluster resource
// This is used to provide documentation for the resource in the Pulumi schema
// and to provide default values for the resource properties.
func (cluster *Cluster) Annotate(a infer.Annotator) {
	a.Describe(
		cluster,
		"An oVirt cluster resource that groups hosts sharing the same CPU type, "+
			"networks and policies on an oVirt engine.",
	)
}
