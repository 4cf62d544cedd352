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

	"github.com/kelu27/pulumi-ovirt/pkg/ovirt"
	ovirtsdk "github.com/ovirt/go-ovirt"
	"golang.org/x/exp/slices"
)

// Migration policy IDs are fixed in the engine; there is no API to look them up.
var migrationPolicyIDs = map[ovirt.MigrationPolicy]string{
	ovirt.MigrationLegacy:          "00000000-0000-0000-0000-000000000000",
	ovirt.MigrationMinimalDowntime: "80554327-0569-496b-bdeb-fcbbf52b827b",
	ovirt.MigrationSuspendWorkload: "80554327-0569-496b-bdeb-fcbbf52b827c",
}

var migrationPolicyNames = map[string]ovirt.MigrationPolicy{
	"00000000-0000-0000-0000-000000000000": ovirt.MigrationLegacy,
	"80554327-0569-496b-bdeb-fcbbf52b827b": ovirt.MigrationMinimalDowntime,
	"80554327-0569-496b-bdeb-fcbbf52b827c": ovirt.MigrationSuspendWorkload,
}

// overCommitPercent maps the memory policy to the engine's overcommit percent.
func overCommitPercent(policy ovirt.OverCommitPolicy) int64 {
	switch policy {
	case ovirt.OverCommitDesktop:
		return 200
	case ovirt.OverCommitServer:
		return 150
	default:
		return 100
	}
}

// overCommitPolicy is the reverse of overCommitPercent. Percents the engine
// reports that do not correspond to a policy flatten to nil.
func overCommitPolicy(percent int64) *ovirt.OverCommitPolicy {
	var policy ovirt.OverCommitPolicy
	switch percent {
	case 200:
		policy = ovirt.OverCommitDesktop
	case 150:
		policy = ovirt.OverCommitServer
	case 100:
		policy = ovirt.OverCommitDisabled
	default:
		return nil
	}
	return &policy
}

// fencingEnabled derives the fencing enabled flag: an explicit fenceEnabled
// wins, otherwise requesting a skip option implies fencing stays on.
func fencingEnabled(inputs ovirt.ClusterInputs) bool {
	if inputs.FenceEnabled != nil {
		return *inputs.FenceEnabled
	}
	return true
}

// buildClusterEntity translates desired-state inputs into an SDK cluster
// object. Each optional sub-object is built only when at least one of its
// parameters is set, so unmanaged settings are never sent to the engine.
// schedulingPolicyID is the already-resolved ID of the requested scheduling
// policy, or empty when none is requested.
func buildClusterEntity(inputs ovirt.ClusterInputs, schedulingPolicyID string) (*ovirtsdk.Cluster, error) {
	builder := ovirtsdk.NewClusterBuilder().Name(inputs.Name)

	if inputs.Comment != nil {
		builder.Comment(*inputs.Comment)
	}
	if inputs.Description != nil {
		builder.Description(*inputs.Description)
	}
	if inputs.Ballooning != nil {
		builder.BallooningEnabled(*inputs.Ballooning)
	}
	if inputs.Gluster != nil {
		builder.GlusterService(*inputs.Gluster)
	}
	if inputs.Virt != nil {
		builder.VirtService(*inputs.Virt)
	}
	if inputs.ThreadsAsCores != nil {
		builder.ThreadsAsCores(*inputs.ThreadsAsCores)
	}
	if inputs.HaReservation != nil {
		builder.HaReservation(*inputs.HaReservation)
	}
	if inputs.TrustedService != nil {
		builder.TrustedService(*inputs.TrustedService)
	}
	if inputs.VMReason != nil {
		builder.OptionalReason(*inputs.VMReason)
	}
	if inputs.HostReason != nil {
		builder.MaintenanceReasonRequired(*inputs.HostReason)
	}

	if schedulingPolicyID != "" {
		builder.SchedulingPolicy(
			ovirtsdk.NewSchedulingPolicyBuilder().
				Id(schedulingPolicyID).
				MustBuild(),
		)
	}

	if inputs.SerialPolicy != nil || inputs.SerialPolicyValue != nil {
		serialNumber := ovirtsdk.NewSerialNumberBuilder()
		if inputs.SerialPolicy != nil {
			serialNumber.Policy(ovirtsdk.SerialNumberPolicy(*inputs.SerialPolicy))
		}
		if inputs.SerialPolicyValue != nil {
			serialNumber.Value(*inputs.SerialPolicyValue)
		}
		builder.SerialNumber(serialNumber.MustBuild())
	}

	if inputs.MigrationBandwidth != nil || inputs.MigrationBandwidthLimit != nil ||
		inputs.MigrationAutoConverge != nil || inputs.MigrationCompressed != nil ||
		inputs.MigrationPolicy != nil {
		migration := ovirtsdk.NewMigrationOptionsBuilder()
		if inputs.MigrationAutoConverge != nil {
			migration.AutoConverge(ovirtsdk.InheritableBoolean(*inputs.MigrationAutoConverge))
		}
		if inputs.MigrationCompressed != nil {
			migration.Compressed(ovirtsdk.InheritableBoolean(*inputs.MigrationCompressed))
		}
		if inputs.MigrationBandwidth != nil || inputs.MigrationBandwidthLimit != nil {
			bandwidth := ovirtsdk.NewMigrationBandwidthBuilder()
			if inputs.MigrationBandwidth != nil {
				bandwidth.AssignmentMethod(
					ovirtsdk.MigrationBandwidthAssignmentMethod(*inputs.MigrationBandwidth),
				)
			}
			if inputs.MigrationBandwidthLimit != nil {
				bandwidth.CustomValue(int64(*inputs.MigrationBandwidthLimit))
			}
			migration.Bandwidth(bandwidth.MustBuild())
		}
		if inputs.MigrationPolicy != nil {
			migration.Policy(
				ovirtsdk.NewMigrationPolicyBuilder().
					Id(migrationPolicyIDs[*inputs.MigrationPolicy]).
					MustBuild(),
			)
		}
		builder.Migration(migration.MustBuild())
	}

	if inputs.ResiliencePolicy != nil {
		builder.ErrorHandling(
			ovirtsdk.NewErrorHandlingBuilder().
				OnError(ovirtsdk.MigrateOnError(*inputs.ResiliencePolicy)).
				MustBuild(),
		)
	}

	if inputs.FenceEnabled != nil || inputs.FenceSkipIfSdActive != nil ||
		inputs.FenceSkipIfConnectivityBroken != nil || inputs.FenceConnectivityThreshold != nil {
		fencing := ovirtsdk.NewFencingPolicyBuilder().Enabled(fencingEnabled(inputs))
		if inputs.FenceSkipIfConnectivityBroken != nil || inputs.FenceConnectivityThreshold != nil {
			skip := ovirtsdk.NewSkipIfConnectivityBrokenBuilder()
			if inputs.FenceSkipIfConnectivityBroken != nil {
				skip.Enabled(*inputs.FenceSkipIfConnectivityBroken)
			}
			if inputs.FenceConnectivityThreshold != nil {
				skip.Threshold(int64(*inputs.FenceConnectivityThreshold))
			}
			fencing.SkipIfConnectivityBroken(skip.MustBuild())
		}
		if inputs.FenceSkipIfSdActive != nil {
			fencing.SkipIfSdActive(
				ovirtsdk.NewSkipIfSdActiveBuilder().
					Enabled(*inputs.FenceSkipIfSdActive).
					MustBuild(),
			)
		}
		builder.FencingPolicy(fencing.MustBuild())
	}

	if inputs.SpiceProxy != nil {
		builder.Display(
			ovirtsdk.NewDisplayBuilder().
				Proxy(*inputs.SpiceProxy).
				MustBuild(),
		)
	}

	if len(inputs.RngSources) > 0 {
		sources := make([]ovirtsdk.RngSource, 0, len(inputs.RngSources))
		for _, source := range inputs.RngSources {
			sources = append(sources, ovirtsdk.RngSource(source))
		}
		builder.RequiredRngSourcesOfAny(sources...)
	}

	if inputs.MemoryPolicy != nil {
		builder.MemoryPolicy(
			ovirtsdk.NewMemoryPolicyBuilder().
				OverCommit(
					ovirtsdk.NewMemoryOverCommitBuilder().
						Percent(overCommitPercent(*inputs.MemoryPolicy)).
						MustBuild(),
				).
				MustBuild(),
		)
	}

	if inputs.Ksm != nil || inputs.KsmNuma != nil {
		// KSM is on when either form is requested; ksmNuma restricts merging
		// to within NUMA nodes.
		enabled := (inputs.Ksm != nil && *inputs.Ksm) || (inputs.KsmNuma != nil && *inputs.KsmNuma)
		mergeAcrossNodes := inputs.KsmNuma == nil || !*inputs.KsmNuma
		builder.Ksm(
			ovirtsdk.NewKsmBuilder().
				Enabled(enabled).
				MergeAcrossNodes(mergeAcrossNodes).
				MustBuild(),
		)
	}

	if inputs.Datacenter != nil {
		builder.DataCenter(
			ovirtsdk.NewDataCenterBuilder().
				Name(*inputs.Datacenter).
				MustBuild(),
		)
	}

	if inputs.Network != nil {
		builder.ManagementNetwork(
			ovirtsdk.NewNetworkBuilder().
				Name(*inputs.Network).
				MustBuild(),
		)
	}

	if inputs.CPUArch != nil || inputs.CPUType != nil {
		cpu := ovirtsdk.NewCpuBuilder()
		if inputs.CPUArch != nil {
			cpu.Architecture(ovirtsdk.Architecture(*inputs.CPUArch))
		}
		if inputs.CPUType != nil {
			cpu.Type(*inputs.CPUType)
		}
		builder.Cpu(cpu.MustBuild())
	}

	if inputs.CompatibilityVersion != nil {
		major, minor, err := ovirt.SplitVersion(*inputs.CompatibilityVersion)
		if err != nil {
			return nil, err
		}
		builder.Version(
			ovirtsdk.NewVersionBuilder().
				Major(major).
				Minor(minor).
				MustBuild(),
		)
	}

	if inputs.SwitchType != nil {
		builder.SwitchType(ovirtsdk.SwitchType(*inputs.SwitchType))
	}

	return builder.Build()
}

// flattenCluster maps an SDK cluster object back into domain outputs. Linked
// objects the engine reports by ID only (data center, management network,
// scheduling policy) are resolved to names through the client.
func flattenCluster(ctx context.Context, client ovirt.Client, cluster *ovirtsdk.Cluster) (*ovirt.ClusterOutputs, error) {
	outputs := &ovirt.ClusterOutputs{
		ClusterID: cluster.MustId(),
	}
	outputs.Name = cluster.MustName()

	if comment, ok := cluster.Comment(); ok {
		outputs.Comment = &comment
	}
	if description, ok := cluster.Description(); ok {
		outputs.Description = &description
	}
	if ballooning, ok := cluster.BallooningEnabled(); ok {
		outputs.Ballooning = &ballooning
	}
	if gluster, ok := cluster.GlusterService(); ok {
		outputs.Gluster = &gluster
	}
	if virt, ok := cluster.VirtService(); ok {
		outputs.Virt = &virt
	}
	if threads, ok := cluster.ThreadsAsCores(); ok {
		outputs.ThreadsAsCores = &threads
	}
	if haReservation, ok := cluster.HaReservation(); ok {
		outputs.HaReservation = &haReservation
	}
	if trusted, ok := cluster.TrustedService(); ok {
		outputs.TrustedService = &trusted
	}
	if vmReason, ok := cluster.OptionalReason(); ok {
		outputs.VMReason = &vmReason
	}
	if hostReason, ok := cluster.MaintenanceReasonRequired(); ok {
		outputs.HostReason = &hostReason
	}

	if ksm, ok := cluster.Ksm(); ok {
		enabled, _ := ksm.Enabled()
		mergeAcrossNodes, hasMerge := ksm.MergeAcrossNodes()
		if !hasMerge {
			mergeAcrossNodes = true
		}
		ksmValue := enabled && mergeAcrossNodes
		ksmNumaValue := enabled && !mergeAcrossNodes
		outputs.Ksm = &ksmValue
		outputs.KsmNuma = &ksmNumaValue
	}

	if display, ok := cluster.Display(); ok {
		if proxy, ok := display.Proxy(); ok {
			outputs.SpiceProxy = &proxy
		}
	}

	if fencing, ok := cluster.FencingPolicy(); ok {
		if enabled, ok := fencing.Enabled(); ok {
			outputs.FenceEnabled = &enabled
		}
		if skip, ok := fencing.SkipIfSdActive(); ok {
			if enabled, ok := skip.Enabled(); ok {
				outputs.FenceSkipIfSdActive = &enabled
			}
		}
		if skip, ok := fencing.SkipIfConnectivityBroken(); ok {
			if enabled, ok := skip.Enabled(); ok {
				outputs.FenceSkipIfConnectivityBroken = &enabled
			}
			if threshold, ok := skip.Threshold(); ok {
				value := int(threshold)
				outputs.FenceConnectivityThreshold = &value
			}
		}
	}

	if errorHandling, ok := cluster.ErrorHandling(); ok {
		if onError, ok := errorHandling.OnError(); ok {
			policy := ovirt.ResiliencePolicy(onError)
			outputs.ResiliencePolicy = &policy
		}
	}

	if migration, ok := cluster.Migration(); ok {
		if autoConverge, ok := migration.AutoConverge(); ok {
			value := ovirt.InheritableBool(autoConverge)
			outputs.MigrationAutoConverge = &value
		}
		if compressed, ok := migration.Compressed(); ok {
			value := ovirt.InheritableBool(compressed)
			outputs.MigrationCompressed = &value
		}
		if bandwidth, ok := migration.Bandwidth(); ok {
			if method, ok := bandwidth.AssignmentMethod(); ok {
				value := ovirt.BandwidthMethod(method)
				outputs.MigrationBandwidth = &value
			}
			if custom, ok := bandwidth.CustomValue(); ok {
				value := int(custom)
				outputs.MigrationBandwidthLimit = &value
			}
		}
		if policy, ok := migration.Policy(); ok {
			if id, ok := policy.Id(); ok {
				if name, known := migrationPolicyNames[id]; known {
					outputs.MigrationPolicy = &name
				}
			}
		}
	}

	if serialNumber, ok := cluster.SerialNumber(); ok {
		if policy, ok := serialNumber.Policy(); ok {
			value := ovirt.SerialPolicy(policy)
			outputs.SerialPolicy = &value
		}
		if value, ok := serialNumber.Value(); ok {
			outputs.SerialPolicyValue = &value
		}
	}

	if schedulingPolicy, ok := cluster.SchedulingPolicy(); ok {
		if name, ok := schedulingPolicy.Name(); ok {
			outputs.SchedulingPolicy = &name
		} else if id, ok := schedulingPolicy.Id(); ok {
			name, err := client.SchedulingPolicyName(ctx, id)
			if err != nil {
				return nil, err
			}
			outputs.SchedulingPolicy = &name
		}
	}

	if memoryPolicy, ok := cluster.MemoryPolicy(); ok {
		if overCommit, ok := memoryPolicy.OverCommit(); ok {
			if percent, ok := overCommit.Percent(); ok {
				outputs.MemoryPolicy = overCommitPolicy(percent)
			}
		}
	}

	if dataCenter, ok := cluster.DataCenter(); ok {
		if name, ok := dataCenter.Name(); ok {
			outputs.Datacenter = &name
		} else if id, ok := dataCenter.Id(); ok {
			name, err := client.DataCenterName(ctx, id)
			if err != nil {
				return nil, err
			}
			outputs.Datacenter = &name
		}
	}

	if network, ok := cluster.ManagementNetwork(); ok {
		if name, ok := network.Name(); ok {
			outputs.Network = &name
		} else if id, ok := network.Id(); ok {
			name, err := client.NetworkName(ctx, id)
			if err != nil {
				return nil, err
			}
			outputs.Network = &name
		}
	}

	if cpu, ok := cluster.Cpu(); ok {
		if architecture, ok := cpu.Architecture(); ok {
			value := ovirt.Architecture(architecture)
			outputs.CPUArch = &value
		}
		if cpuType, ok := cpu.Type(); ok {
			outputs.CPUType = &cpuType
		}
	}

	if version, ok := cluster.Version(); ok {
		major, hasMajor := version.Major()
		minor, hasMinor := version.Minor()
		if hasMajor && hasMinor {
			value := ovirt.FormatVersion(major, minor)
			outputs.CompatibilityVersion = &value
		}
	}

	if switchType, ok := cluster.SwitchType(); ok {
		value := ovirt.SwitchKind(switchType)
		outputs.SwitchType = &value
	}

	if sources, ok := cluster.RequiredRngSources(); ok {
		values := make([]string, 0, len(sources))
		for _, source := range sources {
			values = append(values, string(source))
		}
		slices.Sort(values)
		outputs.RngSources = values
	}

	return outputs, nil
}
