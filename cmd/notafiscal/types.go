package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Garcia3528/notalfiscalIA/internal/catalog"
	"github.com/Garcia3528/notalfiscalIA/internal/cli"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

func typesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage the expense-type catalog",
	}

	cmd.AddCommand(typesListCmd())
	cmd.AddCommand(typesSearchCmd())
	cmd.AddCommand(typesAddCmd())
	cmd.AddCommand(typesActivateCmd("activate", true))
	cmd.AddCommand(typesActivateCmd("deactivate", false))
	return cmd
}

func typesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expense types by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")

			store, err := createStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			types, err := catalog.New(store, nil).List(cmd.Context(), !all)
			if err != nil {
				return err
			}

			printTypes(cmd, types)
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "include deactivated types")
	return cmd
}

func typesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search expense types by name, description or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := createStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			types, err := catalog.New(store, nil).Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("nenhum tipo encontrado"))
				return nil
			}

			printTypes(cmd, types)
			return nil
		},
	}
}

func typesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an expense type to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryName, _ := cmd.Flags().GetString("category")
			description, _ := cmd.Flags().GetString("description")

			category, ok := model.NormalizeCategory(categoryName)
			if !ok {
				return fmt.Errorf("unknown category %q", categoryName)
			}

			store, err := createStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			created, err := store.CreateExpenseType(cmd.Context(), &model.ExpenseType{
				Name:        args[0],
				Description: description,
				Category:    category,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(
				fmt.Sprintf("criado: %s (#%d) em %s", created.Name, created.ID, created.Category)))
			return nil
		},
	}
	cmd.Flags().String("category", "", "category for the new type (required)")
	cmd.Flags().String("description", "", "description for the new type")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func typesActivateCmd(use string, active bool) *cobra.Command {
	short := "Reactivate an expense type"
	if !active {
		short = "Deactivate an expense type"
	}

	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			store, err := createStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := catalog.New(store, nil).SetActive(cmd.Context(), id, active); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf("tipo #%d atualizado", id)))
			return nil
		},
	}
}

func printTypes(cmd *cobra.Command, types []model.ExpenseType) {
	out := cmd.OutOrStdout()

	var current model.Category
	for _, et := range types {
		if et.Category != current {
			current = et.Category
			fmt.Fprintln(out, cli.TitleStyle.Render(string(current)))
		}

		line := fmt.Sprintf("  #%-4d %s", et.ID, et.Name)
		if !et.Active {
			line += cli.SubtleStyle.Render(" (inativo)")
		}
		fmt.Fprintln(out, line)
		if et.Description != "" {
			fmt.Fprintln(out, cli.SubtleStyle.Render("        "+et.Description))
		}
	}
}
