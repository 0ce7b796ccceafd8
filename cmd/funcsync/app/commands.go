package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/funcsync/cmd/funcsync/cmd/clean"
	"github.com/agentstation/funcsync/cmd/funcsync/cmd/quota"
	"github.com/agentstation/funcsync/cmd/funcsync/cmd/verify"
	"github.com/agentstation/funcsync/cmd/funcsync/cmd/version"
)

// CreateCleanCommand creates the clean command with app dependencies.
func (a *App) CreateCleanCommand() *cobra.Command {
	return clean.NewCommand(a)
}

// CreateQuotaCommand creates the quota command with app dependencies.
func (a *App) CreateQuotaCommand() *cobra.Command {
	return quota.NewCommand(a)
}

// CreateVerifyCommand creates the verify command with app dependencies.
func (a *App) CreateVerifyCommand() *cobra.Command {
	return verify.NewCommand(a)
}

// CreateVersionCommand creates the version command with app dependencies.
func (a *App) CreateVersionCommand() *cobra.Command {
	return version.NewCommand(a)
}
