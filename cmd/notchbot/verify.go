package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"notch-chatbot/internal/knowledge"
)

var strictVerify bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Load the knowledge base and print a summary",
	Long: `Loads and validates the knowledge base, lists its contents and reports
consistency issues (references to unknown services or expertise keys).
With --strict, consistency issues make the command fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var src knowledge.Source = knowledge.NewDirSource(cfg.Knowledge.DataDir)
		if cfg.Knowledge.Source == "postgres" {
			a := &app{cfg: cfg}
			if src, err = a.knowledgeSource(cmd.Context()); err != nil {
				return err
			}
			defer func() {
				for _, c := range a.closers {
					_ = c()
				}
			}()
		}

		issues, err := verify(cmd.Context(), src, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if strictVerify && issues > 0 {
			return fmt.Errorf("%d consistency issue(s) found", issues)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&strictVerify, "strict", false, "fail when consistency issues are found")
	rootCmd.AddCommand(verifyCmd)
}

// verify prints the summary and returns the number of consistency issues.
func verify(ctx context.Context, src knowledge.Source, out io.Writer) (int, error) {
	fmt.Fprintln(out, "Loading knowledge base...")
	store, err := knowledge.Open(ctx, src)
	if err != nil {
		return 0, err
	}
	kb := store.Snapshot()

	fmt.Fprintln(out, "\n✓ Successfully loaded knowledge base!")

	fmt.Fprintf(out, "\nServices: %d\n", len(kb.Services))
	for _, s := range kb.Services {
		fmt.Fprintf(out, "  - %s (%s)\n", s.Name, s.Category)
	}

	fmt.Fprintf(out, "\nCase Studies: %d\n", len(kb.CaseStudies))
	for _, cs := range kb.CaseStudies {
		fmt.Fprintf(out, "  - %s: %s\n", cs.ClientName, cs.Title)
	}

	fmt.Fprintf(out, "\nUse Cases: %d\n", len(kb.UseCases))
	for _, uc := range kb.UseCases {
		fmt.Fprintf(out, "  - %s\n", uc.Title)
	}

	fmt.Fprintf(out, "\nExpertise Domains: %d\n", len(kb.ExpertiseDomains))
	for _, key := range sortedDomainKeys(kb.ExpertiseDomains) {
		fmt.Fprintf(out, "  - %s\n", key)
	}

	issues := knowledge.Check(kb)
	if len(issues) == 0 {
		fmt.Fprintln(out, "\n✓ No consistency issues found.")
		return 0, nil
	}
	fmt.Fprintf(out, "\nConsistency issues: %d\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  ! %s\n", issue)
	}
	return len(issues), nil
}

func sortedDomainKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
