// Package config defines the deployment documents consumed by the fabric and
// policy pipelines, the controller profile, and environment-driven tunables.
//
// [FabricDocument] describes one fabric site with its control-plane, border and
// edge devices and its virtual networks. [PolicyDocument] describes security
// groups, network devices, SGACLs, authorization profiles and egress-matrix
// cells. Both are read from JSON or YAML, defaulted, and validated before any
// remote call is made.
package config
