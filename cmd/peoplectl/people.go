package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/awesomepeople/people/api/internal/domain"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var sort string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people",
		Long: `List every person, optionally sorted by name.

Examples:
  peoplectl list
  peoplectl list --sort descending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order := domain.ParseSortOrder(sort)
			if sort != "" && !order.IsSorted() {
				return fmt.Errorf("invalid sort %q (use ascending or descending)", sort)
			}

			s, err := opts.openSession(cmd, "")
			if err != nil {
				return err
			}
			defer s.close()

			people, err := s.queries.List(cmd.Context(), order)
			if err != nil {
				return err
			}
			return writePeople(cmd.OutOrStdout(), opts.format, people)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "Sort by name: ascending or descending")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Long: `Add a person with the given name. The name is stored exactly as given
and must contain at least one non-whitespace character.

Examples:
  peoplectl add "Grace Hopper"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd, "")
			if err != nil {
				return err
			}
			defer s.close()

			person, err := s.queries.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writePerson(cmd.OutOrStdout(), opts.format, person)
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person by id",
		Long: `Delete a person and print the removed record.

Examples:
  peoplectl delete 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: must be an integer", args[0])
			}

			s, err := opts.openSession(cmd, "")
			if err != nil {
				return err
			}
			defer s.close()

			person, err := s.queries.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writePerson(cmd.OutOrStdout(), opts.format, person)
		},
	}
}

func newRandomCmd(opts *rootOptions) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random person",
		Long: `Pick one person at random.

Policies:
  uniform   every stored person is equally likely (default)
  dense_id  draw an id in [1, count]; fails when that id was deleted

Examples:
  peoplectl random
  peoplectl random --policy dense_id`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy = strings.ToLower(policy)
			if policy != "" && policy != string(domain.ParseRandomPolicy(policy)) {
				return fmt.Errorf("invalid policy %q (use uniform or dense_id)", policy)
			}

			s, err := opts.openSession(cmd, policy)
			if err != nil {
				return err
			}
			defer s.close()

			person, err := s.random.PickRandom(cmd.Context())
			if err != nil {
				return err
			}
			return writePerson(cmd.OutOrStdout(), opts.format, person)
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Selection policy: uniform or dense_id (default from RANDOM_POLICY)")
	return cmd
}
