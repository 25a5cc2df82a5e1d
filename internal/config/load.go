package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// LoadFabricFile reads, defaults and validates a fabric document. JSON and YAML
// are both accepted.
func LoadFabricFile(path string) (*FabricDocument, error) {
	var doc FabricDocument
	if err := readDocument(path, &doc); err != nil {
		return nil, err
	}

	doc.ApplyDefaults()

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("fabric document validation failed: %w", err)
	}

	return &doc, nil
}

// ReadPolicyFile reads and defaults a policy document without validating it.
func ReadPolicyFile(path string) (*PolicyDocument, error) {
	var doc PolicyDocument
	if err := readDocument(path, &doc); err != nil {
		return nil, err
	}

	doc.ApplyDefaults()
	return &doc, nil
}

// LoadPolicyFile reads a policy document and validates the sections the
// policy pipeline uses. Egress policies are not checked.
func LoadPolicyFile(path string) (*PolicyDocument, error) {
	doc, err := ReadPolicyFile(path)
	if err != nil {
		return nil, err
	}

	if err := doc.ValidatePolicy(); err != nil {
		return nil, fmt.Errorf("policy document validation failed: %w", err)
	}

	return doc, nil
}

// LoadEgressFile reads a policy document and validates only its egress policies.
func LoadEgressFile(path string) (*PolicyDocument, error) {
	doc, err := ReadPolicyFile(path)
	if err != nil {
		return nil, err
	}

	if err := doc.ValidateEgress(); err != nil {
		return nil, fmt.Errorf("egress policy validation failed: %w", err)
	}

	return doc, nil
}

func readDocument(path string, out any) error {
	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// ApplyDefaults fills optional fields with the controller defaults.
func (d *FabricDocument) ApplyDefaults() {
	if d.FabricSite.FabricType == "" {
		d.FabricSite.FabricType = DefaultFabricType
	}
	for i := range d.BorderDevices {
		if d.BorderDevices[i].ASN == "" {
			d.BorderDevices[i].ASN = DefaultBorderASN
		}
		if d.BorderDevices[i].RoutingProtocol == "" {
			d.BorderDevices[i].RoutingProtocol = DefaultRoutingProtocol
		}
	}
}

// ApplyDefaults fills optional fields with the controller defaults.
func (d *PolicyDocument) ApplyDefaults() {
	for i := range d.NetworkDevices {
		if d.NetworkDevices[i].Type == "" {
			d.NetworkDevices[i].Type = DefaultDeviceType
		}
	}
}
