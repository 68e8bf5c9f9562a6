package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sendoffer "notch-chatbot/internal/tools/send-offer"
)

var offerInput sendoffer.Input

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Build a proposal and email it without going through the chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.offers.Execute(cmd.Context(), &offerInput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s via %s (reference %s)\n", out.Filename, out.Recipient, out.Provider, out.Reference)
		return nil
	},
}

func init() {
	f := offerCmd.Flags()
	f.StringVar(&offerInput.ClientName, "name", "", "client name")
	f.StringVar(&offerInput.ClientEmail, "email", "", "client email")
	f.StringVar(&offerInput.ProjectDescription, "description", "", "project description")
	f.StringVar(&offerInput.ServicesList, "services", "", "comma-separated recommended services")
	f.StringVar(&offerInput.ProjectScope, "scope", "medium", "project scope: small, medium or large")
	_ = offerCmd.MarkFlagRequired("name")
	_ = offerCmd.MarkFlagRequired("email")
	_ = offerCmd.MarkFlagRequired("description")
	_ = offerCmd.MarkFlagRequired("services")
	rootCmd.AddCommand(offerCmd)
}
