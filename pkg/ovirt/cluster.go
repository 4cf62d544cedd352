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

package ovirt

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulumi/pulumi-go-provider/infer"
)

// ErrClusterNotFound is returned when a cluster cannot be found by name.
var ErrClusterNotFound = errors.New("cluster not found")

// ClusterOperations defines the interface for cluster resource operations.
type ClusterOperations interface {
	// Create creates a new cluster and returns its remote representation.
	Create(ctx context.Context, inputs ClusterInputs) (*ClusterOutputs, error)

	// Get retrieves an existing cluster by its name.
	Get(ctx context.Context, name string) (*ClusterOutputs, error)

	// Update updates an existing cluster identified by its engine ID.
	Update(ctx context.Context, id string, inputs ClusterInputs) (*ClusterOutputs, error)

	// Delete removes an existing cluster identified by its engine ID.
	Delete(ctx context.Context, id string) error
}

// OverCommitPolicy selects the memory page sharing threshold applied to hosts.
type OverCommitPolicy string

const (
	// OverCommitDisabled disables memory page sharing (100%).
	OverCommitDisabled OverCommitPolicy = "disabled"
	// OverCommitServer sets the sharing threshold to 150% of system memory.
	OverCommitServer OverCommitPolicy = "server"
	// OverCommitDesktop sets the sharing threshold to 200% of system memory.
	OverCommitDesktop OverCommitPolicy = "desktop"
)

// Validate validates the overcommit policy.
func (policy OverCommitPolicy) Validate(ctx context.Context) error {
	switch policy {
	case OverCommitDisabled, OverCommitServer, OverCommitDesktop:
		return nil
	default:
		return fmt.Errorf("invalid memory policy: %s", policy)
	}
}

// ResiliencePolicy defines how virtual machines are prioritized in migration
// when a host fails.
type ResiliencePolicy string

const (
	// ResilienceDoNotMigrate prevents virtual machines from being migrated.
	ResilienceDoNotMigrate ResiliencePolicy = "do_not_migrate"
	// ResilienceMigrate migrates all virtual machines in priority order.
	ResilienceMigrate ResiliencePolicy = "migrate"
	// ResilienceMigrateHA migrates only highly available virtual machines.
	ResilienceMigrateHA ResiliencePolicy = "migrate_highly_available"
)

// Validate validates the resilience policy.
func (policy ResiliencePolicy) Validate(ctx context.Context) error {
	switch policy {
	case ResilienceDoNotMigrate, ResilienceMigrate, ResilienceMigrateHA:
		return nil
	default:
		return fmt.Errorf("invalid resilience policy: %s", policy)
	}
}

// BandwidthMethod selects how the migration bandwidth limit per host is assigned.
type BandwidthMethod string

const (
	// BandwidthAuto copies the rate limit from the data center host network QoS.
	BandwidthAuto BandwidthMethod = "auto"
	// BandwidthHypervisorDefault defers to the local VDSM setting on the sending host.
	BandwidthHypervisorDefault BandwidthMethod = "hypervisor_default"
	// BandwidthCustom uses a user-defined limit in Mbps.
	BandwidthCustom BandwidthMethod = "custom"
)

// Validate validates the bandwidth assignment method.
func (method BandwidthMethod) Validate(ctx context.Context) error {
	switch method {
	case BandwidthAuto, BandwidthHypervisorDefault, BandwidthCustom:
		return nil
	default:
		return fmt.Errorf("invalid migration bandwidth method: %s", method)
	}
}

// InheritableBool is a boolean that can also defer to the global engine setting.
type InheritableBool string

const (
	// InheritableTrue overrides the global setting to true.
	InheritableTrue InheritableBool = "true"
	// InheritableFalse overrides the global setting to false.
	InheritableFalse InheritableBool = "false"
	// InheritableInherit uses the value set globally.
	InheritableInherit InheritableBool = "inherit"
)

// Validate validates the inheritable boolean.
func (value InheritableBool) Validate(ctx context.Context) error {
	switch value {
	case InheritableTrue, InheritableFalse, InheritableInherit:
		return nil
	default:
		return fmt.Errorf("invalid inheritable boolean: %s", value)
	}
}

// MigrationPolicy defines the conditions for live migrating virtual machines
// in the event of host failure.
type MigrationPolicy string

const (
	// MigrationLegacy keeps the legacy 3.6 behavior.
	MigrationLegacy MigrationPolicy = "legacy"
	// MigrationMinimalDowntime keeps downtime of migrated machines insignificant.
	MigrationMinimalDowntime MigrationPolicy = "minimal_downtime"
	// MigrationSuspendWorkload allows a more significant downtime.
	MigrationSuspendWorkload MigrationPolicy = "suspend_workload"
)

// Validate validates the migration policy.
func (policy MigrationPolicy) Validate(ctx context.Context) error {
	switch policy {
	case MigrationLegacy, MigrationMinimalDowntime, MigrationSuspendWorkload:
		return nil
	default:
		return fmt.Errorf("invalid migration policy: %s", policy)
	}
}

// SerialPolicy selects the serial number policy for virtual machines in the cluster.
type SerialPolicy string

const (
	// SerialPolicyVM uses the virtual machine UUID as its serial number.
	SerialPolicyVM SerialPolicy = "vm"
	// SerialPolicyHost uses the host UUID as the serial number.
	SerialPolicyHost SerialPolicy = "host"
	// SerialPolicyCustom uses the value given in serialPolicyValue.
	SerialPolicyCustom SerialPolicy = "custom"
)

// Validate validates the serial number policy.
func (policy SerialPolicy) Validate(ctx context.Context) error {
	switch policy {
	case SerialPolicyVM, SerialPolicyHost, SerialPolicyCustom:
		return nil
	default:
		return fmt.Errorf("invalid serial policy: %s", policy)
	}
}

// Architecture is the CPU architecture of the cluster.
type Architecture string

const (
	// ArchitectureX86_64 is the x86_64 architecture.
	ArchitectureX86_64 Architecture = "x86_64"
	// ArchitecturePPC64 is the ppc64 architecture.
	ArchitecturePPC64 Architecture = "ppc64"
	// ArchitectureUndefined leaves the architecture undefined.
	ArchitectureUndefined Architecture = "undefined"
)

// Validate validates the CPU architecture.
func (arch Architecture) Validate(ctx context.Context) error {
	switch arch {
	case ArchitectureX86_64, ArchitecturePPC64, ArchitectureUndefined:
		return nil
	default:
		return fmt.Errorf("invalid cpu architecture: %s", arch)
	}
}

// SwitchKind is the type of switch used by all networks in the cluster.
type SwitchKind string

const (
	// SwitchLegacy uses a linux bridge.
	SwitchLegacy SwitchKind = "legacy"
	// SwitchOVS uses Open vSwitch.
	SwitchOVS SwitchKind = "ovs"
)

// Validate validates the switch type.
func (kind SwitchKind) Validate(ctx context.Context) error {
	switch kind {
	case SwitchLegacy, SwitchOVS:
		return nil
	default:
		return fmt.Errorf("invalid switch type: %s", kind)
	}
}

// RngSourceHwrng and RngSourceRandom are the random number generator devices
// hosts in the cluster may be required to expose.
const (
	RngSourceHwrng  = "hwrng"
	RngSourceRandom = "random"
)

// ClusterInputs represents the desired state of a cluster. A nil field is
// unmanaged: it is omitted from create and update payloads and never produces
// a diff against the remote value.
type ClusterInputs struct {
	Name                          string            `pulumi:"name"`
	Datacenter                    *string           `pulumi:"datacenter,optional"`
	Description                   *string           `pulumi:"description,optional"`
	Comment                       *string           `pulumi:"comment,optional"`
	Network                       *string           `pulumi:"network,optional"`
	Ballooning                    *bool             `pulumi:"ballooning,optional"`
	Virt                          *bool             `pulumi:"virt,optional"`
	Gluster                       *bool             `pulumi:"gluster,optional"`
	ThreadsAsCores                *bool             `pulumi:"threadsAsCores,optional"`
	Ksm                           *bool             `pulumi:"ksm,optional"`
	KsmNuma                       *bool             `pulumi:"ksmNuma,optional"`
	HaReservation                 *bool             `pulumi:"haReservation,optional"`
	TrustedService                *bool             `pulumi:"trustedService,optional"`
	VMReason                      *bool             `pulumi:"vmReason,optional"`
	HostReason                    *bool             `pulumi:"hostReason,optional"`
	MemoryPolicy                  *OverCommitPolicy `pulumi:"memoryPolicy,optional"`
	RngSources                    []string          `pulumi:"rngSources,optional"`
	SpiceProxy                    *string           `pulumi:"spiceProxy,optional"`
	FenceEnabled                  *bool             `pulumi:"fenceEnabled,optional"`
	FenceSkipIfSdActive           *bool             `pulumi:"fenceSkipIfSdActive,optional"`
	FenceSkipIfConnectivityBroken *bool             `pulumi:"fenceSkipIfConnectivityBroken,optional"`
	FenceConnectivityThreshold    *int              `pulumi:"fenceConnectivityThreshold,optional"`
	ResiliencePolicy              *ResiliencePolicy `pulumi:"resiliencePolicy,optional"`
	MigrationBandwidth            *BandwidthMethod  `pulumi:"migrationBandwidth,optional"`
	MigrationBandwidthLimit       *int              `pulumi:"migrationBandwidthLimit,optional"`
	MigrationAutoConverge         *InheritableBool  `pulumi:"migrationAutoConverge,optional"`
	MigrationCompressed           *InheritableBool  `pulumi:"migrationCompressed,optional"`
	MigrationPolicy               *MigrationPolicy  `pulumi:"migrationPolicy,optional"`
	SerialPolicy                  *SerialPolicy     `pulumi:"serialPolicy,optional"`
	SerialPolicyValue             *string           `pulumi:"serialPolicyValue,optional"`
	SchedulingPolicy              *string           `pulumi:"schedulingPolicy,optional"`
	CPUArch                       *Architecture     `pulumi:"cpuArch,optional"`
	CPUType                       *string           `pulumi:"cpuType,optional"`
	SwitchType                    *SwitchKind       `pulumi:"switchType,optional"`
	CompatibilityVersion          *string           `pulumi:"compatibilityVersion,optional"`
}

// Validate checks every enumerated field that is set.
func (inputs *ClusterInputs) Validate(ctx context.Context) error {
	if inputs.MemoryPolicy != nil {
		if err := inputs.MemoryPolicy.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.ResiliencePolicy != nil {
		if err := inputs.ResiliencePolicy.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.MigrationBandwidth != nil {
		if err := inputs.MigrationBandwidth.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.MigrationAutoConverge != nil {
		if err := inputs.MigrationAutoConverge.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.MigrationCompressed != nil {
		if err := inputs.MigrationCompressed.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.MigrationPolicy != nil {
		if err := inputs.MigrationPolicy.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.SerialPolicy != nil {
		if err := inputs.SerialPolicy.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.CPUArch != nil {
		if err := inputs.CPUArch.Validate(ctx); err != nil {
			return err
		}
	}
	if inputs.SwitchType != nil {
		if err := inputs.SwitchType.Validate(ctx); err != nil {
			return err
		}
	}
	for _, source := range inputs.RngSources {
		if source != RngSourceHwrng && source != RngSourceRandom {
			return fmt.Errorf("invalid rng source: %s", source)
		}
	}
	return nil
}

// Annotate adds descriptions to the input properties for documentation and schema generation.
func (inputs *ClusterInputs) Annotate(a infer.Annotator) {
	a.Describe(&inputs.Name, "Name of the cluster to manage.")
	a.Describe(&inputs.Datacenter, "Name of the data center the cluster resides in.")
	a.Describe(&inputs.Description, "Description of the cluster.")
	a.Describe(&inputs.Comment, "Comment of the cluster.")
	a.Describe(&inputs.Network, "Management network of the cluster, used to access the cluster hosts.")
	a.Describe(&inputs.Ballooning, "If true, enable memory balloon optimization to redistribute host memory based on VM needs.")
	a.Describe(&inputs.Virt, "If true, hosts in this cluster will be used to run virtual machines.")
	a.Describe(&inputs.Gluster, "If true, hosts in this cluster will be used as Gluster storage server nodes instead of running virtual machines.")
	a.Describe(&inputs.ThreadsAsCores, "If true, exposed host threads are treated as cores that virtual machines can use.")
	a.Describe(&inputs.Ksm, "If true, MoM may run Kernel Same-page Merging when it yields a memory saving that outweighs its CPU cost.")
	a.Describe(&inputs.KsmNuma, "If true, enables KSM for best performance inside NUMA nodes.")
	a.Describe(&inputs.HaReservation, "If true, the engine monitors cluster capacity for highly available virtual machines.")
	a.Describe(&inputs.TrustedService, "If true, enables integration with an OpenAttestation server.")
	a.Describe(&inputs.VMReason, "If true, enables an optional reason field when a virtual machine is shut down from the engine.")
	a.Describe(&inputs.HostReason, "If true, enables an optional reason field when a host is placed into maintenance mode from the engine.")
	a.Describe(&inputs.MemoryPolicy, "Memory page sharing policy: disabled (100%), server (150%) or desktop (200%).")
	a.Describe(&inputs.RngSources, "Random number generator devices that all hosts in the cluster must provide (hwrng, random).")
	a.Describe(&inputs.SpiceProxy, "The proxy the SPICE client connects to virtual machines through, as protocol://[host]:[port].")
	a.Describe(&inputs.FenceEnabled, "If true, enables fencing on the cluster. Fencing is enabled by default.")
	a.Describe(&inputs.FenceSkipIfSdActive, "If true, hosts that are Non Responsive but still connected to storage are not fenced.")
	a.Describe(&inputs.FenceSkipIfConnectivityBroken, "If true, fencing is temporarily disabled when the share of hosts with connectivity issues reaches the threshold.")
	a.Describe(&inputs.FenceConnectivityThreshold, "The threshold used by fenceSkipIfConnectivityBroken.")
	a.Describe(&inputs.ResiliencePolicy, "How virtual machines are prioritized in migration: do_not_migrate, migrate or migrate_highly_available.")
	a.Describe(&inputs.MigrationBandwidth, "How the maximum migration bandwidth per host is assigned: auto, hypervisor_default or custom.")
	a.Describe(&inputs.MigrationBandwidthLimit, "The custom migration bandwidth limit in Mbps; used only when migrationBandwidth is custom.")
	a.Describe(&inputs.MigrationAutoConverge, "Whether auto-convergence is used during live migration (true, false or inherit); used with the legacy migration policy.")
	a.Describe(&inputs.MigrationCompressed, "Whether compression is used during live migration (true, false or inherit); used with the legacy migration policy.")
	a.Describe(&inputs.MigrationPolicy, "Live migration policy on host failure: legacy, minimal_downtime or suspend_workload.")
	a.Describe(&inputs.SerialPolicy, "Serial number policy for virtual machines in the cluster: vm, host or custom.")
	a.Describe(&inputs.SerialPolicyValue, "The custom serial number; used only when serialPolicy is custom.")
	a.Describe(&inputs.SchedulingPolicy, "Name of the scheduling policy used by the cluster.")
	a.Describe(&inputs.CPUArch, "CPU architecture of the cluster: x86_64, ppc64 or undefined.")
	a.Describe(&inputs.CPUType, "CPU codename, for example 'Intel SandyBridge Family'.")
	a.Describe(&inputs.SwitchType, "Type of switch used by all networks in the cluster: legacy (linux bridge) or ovs (Open vSwitch).")
	a.Describe(&inputs.CompatibilityVersion, "The compatibility version of the cluster, as major.minor. All hosts must support at least this version.")
}

// ClusterOutputs represents the remote state of a cluster.
type ClusterOutputs struct {
	ClusterInputs
	ClusterID string `pulumi:"clusterId"`
}

// Annotate adds descriptions to the output-only properties.
func (outputs *ClusterOutputs) Annotate(a infer.Annotator) {
	a.Describe(&outputs.ClusterID, "The engine ID of the managed cluster.")
}
