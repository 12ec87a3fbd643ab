package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/themilho/product-catalog/internal/catalog"
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/internal/form"
	"github.com/themilho/product-catalog/pkg/health"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		search    string
		category  string
		favorites bool
		view      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, ok := domain.ParseViewMode(view)
			if !ok {
				return fmt.Errorf("invalid --view %q: want grid or list", view)
			}

			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}

			v := catalog.NewView(api, printNotifier{cmd.ErrOrStderr()}, a.logger)
			v.SetSearchText(search)
			v.SetCategory(category)
			v.SetViewMode(mode)
			if favorites {
				err = v.SetFavoritesOnly(cmd.Context(), true)
			} else {
				err = v.Load(cmd.Context(), false)
			}
			if err != nil {
				return err
			}

			printProducts(out(cmd), v.State())
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text matched against name, description and category")
	cmd.Flags().StringVar(&category, "category", catalog.AllCategories, "only products of this category")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorite products")
	cmd.Flags().StringVar(&view, "view", string(domain.ViewList), "output layout: grid or list")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			p, err := api.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProduct(out(cmd), p)
			return nil
		},
	}
}

// productFlags are the form fields exposed as flags by create and edit.
type productFlags struct {
	name        string
	description string
	price       string
	category    string
	imageURL    string
	favorite    bool
	clearImage  bool
}

func (pf *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.name, "name", "", "product name")
	cmd.Flags().StringVar(&pf.description, "description", "", "product description")
	cmd.Flags().StringVar(&pf.price, "price", "", "price, e.g. 19.90")
	cmd.Flags().StringVar(&pf.category, "category", "", "one of the fixed categories (see: catalog categories)")
	cmd.Flags().StringVar(&pf.imageURL, "image-url", "", "absolute image URL")
	cmd.Flags().BoolVar(&pf.favorite, "favorite", false, "mark as favorite")
}

// apply copies the flags the user set onto f.
func (pf *productFlags) apply(cmd *cobra.Command, f *form.Form) error {
	values := map[string]string{
		"name":        pf.name,
		"description": pf.description,
		"price":       pf.price,
		"category":    pf.category,
		"image-url":   pf.imageURL,
	}
	fields := map[string]string{
		"name":        form.FieldName,
		"description": form.FieldDescription,
		"price":       form.FieldPrice,
		"category":    form.FieldCategory,
		"image-url":   form.FieldImageURL,
	}
	for flag, value := range values {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		if err := f.Set(fields[flag], value); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("favorite") {
		f.SetFavorite(pf.favorite)
	}
	if pf.clearImage {
		f.ClearImage()
	}
	return nil
}

// save submits f and prints the outcome.
func (a *app) save(cmd *cobra.Command, api form.API, f *form.Form) error {
	saved, route, err := f.Save(cmd.Context(), api, printNotifier{cmd.ErrOrStderr()}, a.logger)
	if errors.Is(err, form.ErrInvalid) {
		printFieldErrors(cmd.ErrOrStderr(), f)
		return err
	}
	if err != nil {
		return err
	}

	printProduct(out(cmd), saved)
	a.logger.Debug("product saved", slog.String("route", route))
	return nil
}

func newCreateCmd(a *app) *cobra.Command {
	var pf productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.NewCreate()
			if err := pf.apply(cmd, f); err != nil {
				return err
			}
			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			return a.save(cmd, api, f)
		},
	}
	pf.register(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var pf productFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a product; fields not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}

			f, err := form.Load(cmd.Context(), api, id)
			if err != nil {
				a.logger.Error("load product for edit failed",
					slog.Int("product_id", id),
					slog.String("error", err.Error()),
				)
				fmt.Fprintln(cmd.ErrOrStderr(), form.LoadErrorMessage)
				return err
			}
			if err := pf.apply(cmd, f); err != nil {
				return err
			}
			return a.save(cmd, api, f)
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&pf.clearImage, "clear-image", false, "remove the image URL")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			actions := &catalog.Actions{
				API:      api,
				Notifier: printNotifier{cmd.ErrOrStderr()},
				Logger:   a.logger,
				Confirmer: catalog.ConfirmFunc(func(_ context.Context, prompt string) bool {
					if yes {
						return true
					}
					fmt.Fprintf(out(cmd), "%s [y/N] ", prompt)
					answer, _ := in.ReadString('\n')
					return isYes(answer)
				}),
			}

			_, err = actions.Delete(cmd.Context(), domain.Product{ID: id})
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newFavoriteCmd(a *app) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "favorite ID",
		Short: "Mark a product as favorite (or unmark it with --off)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}

			actions := &catalog.Actions{
				API:      api,
				Notifier: printNotifier{cmd.ErrOrStderr()},
				Logger:   a.logger,
			}
			// ToggleFavorite flips the flag it is given.
			return actions.ToggleFavorite(cmd.Context(), domain.Product{ID: id, Favorite: off})
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "remove from favorites")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories a product may belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range domain.Categories {
				fmt.Fprintln(out(cmd), c)
			}
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the catalog API is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := a.client(cmd.Context())
			if err != nil {
				return err
			}

			h := health.NewHandler()
			h.Register(api.BaseURL(), health.HTTPCheck(a.doer, api.BaseURL()+"/health/ready"))
			resp := h.Check(cmd.Context())

			for name, check := range resp.Checks {
				fmt.Fprintf(out(cmd), "%s: %s\n", name, check.Status)
			}
			if resp.Status != health.StatusUp {
				return fmt.Errorf("catalog API is %s", resp.Status)
			}
			return nil
		},
	}
}
