// Package provisioning provides the shared types for ordered, best-effort
// deployment pipelines against a controller.
//
// # Subpackages
//
//   - fabric/: site, device roles, virtual networks, IP pools, provisioning
//   - policy/: security groups, network devices, SGACLs, authorization profiles, egress matrix
//
// # Core Types
//
// Runner executes rest.Operations inside named stages and records the outcome
// of every item in a Report. Item failures are recorded and the stage moves on;
// only a missing document or a failed prerequisite ends a run early.
// Waiter paces dependent calls. Observer receives progress events.
package provisioning
