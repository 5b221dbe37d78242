package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/envelope-budget/envelope/internal/category"
	"github.com/envelope-budget/envelope/internal/cli"
	"github.com/envelope-budget/envelope/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budgeting categories",
		Long:  `List, add, edit, hide and reorder the categories the plan is built from.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(hideCategoryCmd())
	cmd.AddCommand(showCategoryCmd())
	cmd.AddCommand(reorderCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var (
		query      string
		showHidden bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories grouped by type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if !showHidden {
				visible := make([]model.Category, 0, len(categories))
				for _, c := range categories {
					if c.IsVisible {
						visible = append(visible, c)
					}
				}
				categories = visible
			}

			grouped := category.GroupByType(categories, query)
			total := len(grouped.Income) + len(grouped.Expense) + len(grouped.Saving)
			if total == 0 {
				fmt.Println(cli.FormatInfo("No categories found. Use 'envelope categories add' to create one."))
				return nil
			}

			printCategorySection("Income", grouped.Income)
			printCategorySection("Expenses", grouped.Expense)
			printCategorySection("Savings", grouped.Saving)

			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show categories whose name contains this text")
	cmd.Flags().BoolVar(&showHidden, "all", false, "Include hidden categories")

	return cmd
}

func printCategorySection(title string, cats []model.Category) {
	if len(cats) == 0 {
		return
	}

	fmt.Println(cli.StyleTitle(title))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", "ID", "Name", "Order", "Visible")
	for _, cat := range cats {
		name := cat.Name
		if cat.Emoji != "" {
			name = cat.Emoji + " " + name
		}
		visible := "yes"
		if !cat.IsVisible {
			visible = cli.StyleSubtle("hidden")
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", cat.ID, name, cat.OrderIndexOrZero(), visible)
	}
	_ = w.Flush()
	fmt.Println()
}

func addCategoryCmd() *cobra.Command {
	var (
		typeFlag      string
		color         string
		emoji         string
		budgetEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a new category. Names are unique per type, case-insensitively.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if !category.ValidateName(name) {
				return fmt.Errorf("category name cannot be empty")
			}

			typ, err := parseCategoryType(typeFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			existing, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			if category.IsDuplicate(name, typ, existing, 0) {
				return fmt.Errorf("a %s category named %q already exists", typ, name)
			}

			// New categories go to the end of their type's display order.
			var sameType []model.Category
			for _, c := range existing {
				if c.Type == typ {
					sameType = append(sameType, c)
				}
			}
			orderIndex := category.NextOrderIndex(sameType)

			created, err := store.CreateCategory(ctx, &model.Category{
				Name:          name,
				Type:          typ,
				Color:         color,
				Emoji:         emoji,
				OrderIndex:    &orderIndex,
				IsVisible:     true,
				BudgetEnabled: budgetEnabled,
			})
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s category %q (ID: %d)", created.Type, created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "expense", "Category type (income, expense, saving)")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().StringVar(&emoji, "emoji", "", "Display emoji")
	cmd.Flags().BoolVar(&budgetEnabled, "budget", true, "Whether the category takes a monthly budget")

	return cmd
}

func editCategoryCmd() *cobra.Command {
	var (
		newName string
		color   string
		emoji   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category ID: %w", err)
			}

			if newName == "" && color == "" && emoji == "" {
				return fmt.Errorf("must specify --name, --color or --emoji to edit")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.GetCategoryByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get category: %w", err)
			}
			if cat == nil {
				return fmt.Errorf("category with ID %d not found", id)
			}

			if newName != "" {
				if !category.ValidateName(newName) {
					return fmt.Errorf("category name cannot be empty")
				}
				all, err := store.GetCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to get categories: %w", err)
				}
				if category.IsDuplicate(newName, cat.Type, all, cat.ID) {
					return fmt.Errorf("a %s category named %q already exists", cat.Type, newName)
				}
				cat.Name = newName
			}
			if color != "" {
				cat.Color = color
			}
			if emoji != "" {
				cat.Emoji = emoji
			}

			if err := store.UpdateCategory(ctx, cat); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "New category name")
	cmd.Flags().StringVar(&color, "color", "", "New display color")
	cmd.Flags().StringVar(&emoji, "emoji", "", "New display emoji")

	return cmd
}

func hideCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <id>",
		Short: "Hide a category from listings",
		Long:  `Hiding is soft: existing records keep their category, it just stops showing up in pickers and listings.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setVisibility(cmd, args[0], false)
		},
	}
}

func showCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Reveal a hidden category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setVisibility(cmd, args[0], true)
		},
	}
}

func setVisibility(cmd *cobra.Command, rawID string, visible bool) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid category ID: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SetCategoryVisibility(ctx, id, visible); err != nil {
		return fmt.Errorf("failed to set category visibility: %w", err)
	}

	verb := "Hid"
	if visible {
		verb = "Revealed"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s category %d", verb, id)))
	return nil
}

func reorderCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id> <index>",
		Short: "Set a category's display order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category ID: %w", err)
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid order index: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetCategoryOrder(ctx, id, index); err != nil {
				return fmt.Errorf("failed to set category order: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Moved category %d to position %d", id, index)))
			return nil
		},
	}
}
