package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/schedule"
)

// completeBlockedDomains returns a completion function for block-list entries.
func completeBlockedDomains(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Settings == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := ctx.Settings.Get()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, d := range s.BlockedDomains {
		if strings.HasPrefix(d, toComplete) {
			completions = append(completions, d)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeDays suggests named weekday sets and day abbreviations.
func completeDays(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	candidates := []string{
		"weekdays\tMonday to Friday",
		"weekend\tSaturday and Sunday",
		"all\tevery day",
		"none\tno days",
	}
	for i, name := range schedule.DayNames {
		candidates = append(candidates, strings.ToLower(schedule.DayAbbrevs[i])+"\t"+name)
	}

	var filtered []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.Split(c, "\t")[0], strings.ToLower(toComplete)) {
			filtered = append(filtered, c)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}
