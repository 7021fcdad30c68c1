// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"strings"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/sirseerhq/sirseer-sync/internal/router"
	"github.com/sirseerhq/sirseer-sync/internal/store"
	"github.com/spf13/cobra"
)

// runAction resolves in and runs the action through a session.
func (o *rootOptions) runAction(ctx context.Context, in router.Inputs) error {
	action, err := router.Resolve(in)
	if err != nil {
		return err
	}
	return o.run(ctx, func(ctx context.Context, s *session) (interface{}, error) {
		return s.router.Run(ctx, action)
	})
}

// requireArgs rejects blank positional arguments, which would otherwise
// silently select a different action.
func requireArgs(names []string, args []string) error {
	for i, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%s must not be empty: %w", names[i], syncerrors.ErrInvalidInput)
		}
	}
	return nil
}

func newUsersCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List stored users or import one from GitHub",
	}
	cmd.AddCommand(newUsersListCommand(opts), newUsersGetCommand(opts))
	return cmd
}

func newUsersListCommand(opts *rootOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored users, optionally filtered",
		Long: `List stored users. The filter is a comma separated list of key:value
pairs that must all match. Keys: id, login, name, company, location.

For example: --filter location:lisbon,company:acme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runAction(cmd.Context(), router.Inputs{Filter: filter})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "User filter key:value,... (env FILTER)")
	_ = cmd.Flags().SetAnnotation("filter", envAnnotation, []string{"FILTER"})
	return cmd
}

func newUsersGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <login>",
		Short: "Print a user, importing it from GitHub if it is not stored yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireArgs([]string{"login"}, args); err != nil {
				return err
			}
			return opts.runAction(cmd.Context(), router.Inputs{Login: args[0], Import: true})
		},
	}
}

func newLanguagesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages <login>",
		Short: "List the languages a user likes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireArgs([]string{"login"}, args); err != nil {
				return err
			}
			return opts.runAction(cmd.Context(), router.Inputs{Login: args[0]})
		},
	}
}

func newLikeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "like <login> <language>",
		Short: "Record that a user likes a language",
		Long: `Record that a user likes a language. The user is imported from GitHub and
the language is created when they are not stored yet. Recording the same like
twice is a no-op.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireArgs([]string{"login", "language"}, args); err != nil {
				return err
			}
			return opts.runAction(cmd.Context(), router.Inputs{Login: args[0], Language: args[1]})
		},
	}
}

func newSchemaCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create any missing tables and print the table names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), func(ctx context.Context, s *session) (interface{}, error) {
				tables := store.Tables()
				if err := s.db.EnsureSchema(ctx, tables...); err != nil {
					return nil, err
				}
				names := make([]string, len(tables))
				for i, t := range tables {
					names[i] = t.Name
				}
				return names, nil
			})
		},
	}
}
