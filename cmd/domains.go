package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/domain"
	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/model"
)

// domainsCmd represents the domains command.
var domainsCmd = &cobra.Command{
	Use:     "domains",
	Aliases: []string{"domain", "dom", "sites"},
	Short:   "Manage the block-list",
	Long: `List, add, remove and validate blocked domains.

A hostname is blocked when it contains a listed domain, so "youtube.com"
also covers "m.youtube.com" and "music.youtube.com".

Examples:
  tabguard domains
  tabguard domains add news.ycombinator.com
  tabguard domains remove reddit.com
  tabguard domains validate https://www.example.org/`,
	RunE: runDomainsList,
}

var domainsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List blocked domains",
	Args:    cobra.NoArgs,
	RunE:    runDomainsList,
}

var domainsAddCmd = &cobra.Command{
	Use:   "add DOMAIN",
	Short: "Add a domain to the block-list",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsAdd,
}

var domainsRemoveCmd = &cobra.Command{
	Use:               "remove DOMAIN",
	Aliases:           []string{"rm", "delete"},
	Short:             "Remove a domain from the block-list",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBlockedDomains,
	RunE:              runDomainsRemove,
}

var domainsValidateCmd = &cobra.Command{
	Use:   "validate DOMAIN",
	Short: "Check whether a domain could be added",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsValidate,
}

func init() {
	domainsCmd.AddCommand(domainsListCmd)
	domainsCmd.AddCommand(domainsAddCmd)
	domainsCmd.AddCommand(domainsRemoveCmd)
	domainsCmd.AddCommand(domainsValidateCmd)
	rootCmd.AddCommand(domainsCmd)
}

func runDomainsList(cmd *cobra.Command, args []string) error {
	s, err := ctx.Settings.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDomains(s.BlockedDomains)
	}
	ctx.CLIFormatter().PrintDomains(s.BlockedDomains)
	return nil
}

func runDomainsAdd(cmd *cobra.Command, args []string) error {
	var result domain.Result
	_, err := ctx.Settings.Update(func(s *model.Settings) error {
		result = domain.Validate(args[0], s.BlockedDomains)
		if !result.Valid {
			return rejected(args[0], result)
		}
		s.AddDomain(result.Domain)
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDomainChange("added", result.Domain, true)
	}
	ctx.CLIFormatter().Success("Blocked " + ctx.CLIFormatter().DomainName(result.Domain))
	return nil
}

func runDomainsRemove(cmd *cobra.Command, args []string) error {
	name := domain.Clean(args[0])
	removed, err := ctx.Settings.RemoveBlockedDomain(name)
	if err != nil {
		return err
	}
	if !removed {
		return &tgerrors.UserError{
			Message:    "Domain is not on the block-list",
			Field:      "domain",
			Value:      name,
			Suggestion: tgerrors.Suggestions[tgerrors.ErrDomainNotBlocked],
			Cause:      tgerrors.ErrDomainNotBlocked,
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDomainChange("removed", name, true)
	}
	ctx.CLIFormatter().Success("Unblocked " + ctx.CLIFormatter().DomainName(name))
	return nil
}

func runDomainsValidate(cmd *cobra.Command, args []string) error {
	s, err := ctx.Settings.Get()
	if err != nil {
		return err
	}

	result := domain.Validate(args[0], s.BlockedDomains)
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintValidation(result)
	}
	ctx.CLIFormatter().PrintValidation(result)
	return nil
}

// rejected converts a failed validation into a user error.
func rejected(input string, r domain.Result) error {
	return &tgerrors.UserError{
		Message:    r.Message,
		Field:      "domain",
		Value:      input,
		Suggestion: tgerrors.Suggestions[tgerrors.ErrDomainRejected],
		Cause:      tgerrors.ErrDomainRejected,
	}
}
