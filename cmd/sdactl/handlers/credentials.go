package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/platform/rest"
)

// PasswordEnv supplies the password when --password is not given.
const PasswordEnv = "SDACTL_PASSWORD"

type controllerKind string

const (
	fabricController controllerKind = "fabric"
	policyController controllerKind = "policy"
)

var (
	// loadProfile reads the controller profile.
	loadProfile = config.LoadProfile

	// isInteractive reports whether a password prompt can be shown.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// promptPassword asks for a password without echoing it.
	promptPassword = runPasswordPrompt
)

// resolveConnection merges profile and flags, then finds the password in the
// flag, the environment or an interactive prompt, in that order.
func resolveConnection(ctx context.Context, g *GlobalOptions, kind controllerKind, conn ConnectionOptions) (config.Controller, rest.Credentials, error) {
	profile, err := loadProfile(g.ProfilePath)
	if err != nil {
		return config.Controller{}, rest.Credentials{}, err
	}

	base := profile.Fabric
	if kind == policyController {
		base = profile.Policy
	}
	ctrl := base.Merge(config.Controller{Host: conn.Host, Username: conn.Username, VerifyTLS: conn.VerifyTLS})

	if ctrl.Host == "" {
		return ctrl, rest.Credentials{}, fmt.Errorf("--host is required (or set %s.host in the profile)", kind)
	}
	if ctrl.Username == "" {
		return ctrl, rest.Credentials{}, fmt.Errorf("--username is required (or set %s.username in the profile)", kind)
	}

	password := conn.Password
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if password == "" {
		if !isInteractive() {
			return ctrl, rest.Credentials{}, fmt.Errorf("password required: use --password or set %s", PasswordEnv)
		}
		password, err = promptPassword(ctx, fmt.Sprintf("Password for %s@%s", ctrl.Username, ctrl.Host))
		if err != nil {
			return ctrl, rest.Credentials{}, err
		}
	}

	return ctrl, rest.Credentials{Username: ctrl.Username, Password: password}, nil
}

func runPasswordPrompt(ctx context.Context, title string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("password prompt: %w", err)
	}
	return password, nil
}
