package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage keyword classification rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List rules in match order",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openRuleStore()
			if err != nil {
				return err
			}
			rules := store.Rules()
			if len(rules) == 0 {
				fmt.Println("No rules defined")
				return nil
			}
			for _, rule := range rules {
				fmt.Printf("%s -> %s\n", rule.Keyword, rule.Category)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <keyword> <category>",
		Short: "Add or update a rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := openRuleStore()
			if err != nil {
				return err
			}
			if err := store.Add(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Rule added: %s -> %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <keyword>",
		Short: "Remove a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := openRuleStore()
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Rule removed: %s\n", args[0])
			return nil
		},
	})

	return cmd
}
