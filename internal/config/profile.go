package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultProfileFile is looked up in the working directory when no profile is given.
const DefaultProfileFile = "sdactl.yaml"

// Profile stores connection settings for both controllers so they do not have
// to be repeated on every invocation. Passwords are never read from it.
type Profile struct {
	Fabric Controller `yaml:"fabric"`
	Policy Controller `yaml:"policy"`
}

// Controller holds the connection settings of one controller.
type Controller struct {
	Host      string `yaml:"host"`
	Username  string `yaml:"username"`
	VerifyTLS bool   `yaml:"verify_tls"`
}

// LoadProfile reads a controller profile. A missing file at the default
// location is not an error and yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultProfileFile
	}

	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	return &p, nil
}

// Merge returns c with every non-empty field of override applied on top.
func (c Controller) Merge(override Controller) Controller {
	if override.Host != "" {
		c.Host = override.Host
	}
	if override.Username != "" {
		c.Username = override.Username
	}
	if override.VerifyTLS {
		c.VerifyTLS = true
	}
	return c
}
