package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/chapterplate/internal/services/lateplates"
	"github.com/KirkDiggler/chapterplate/internal/services/mealplanner"
	"github.com/spf13/cobra"
)

func adminCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Kitchen staff tools",
	}
	cmd.AddCommand(planCmd(opts), mealCmd(opts), adminLatePlatesCmd(opts))
	return cmd
}

func (a *app) planner() (mealplanner.Service, error) {
	return mealplanner.New(&mealplanner.Config{
		Requester: a.store.Client(),
		Viewer:    a.store,
		Location:  a.location,
		Logger:    a.logger,
	})
}

func planCmd(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "plan FILE",
		Short: "Upload a week of meals from a YAML plan",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := parsePlan(data)
			if err != nil {
				return err
			}
			start, err := p.start(a.location)
			if err != nil {
				return err
			}

			planner, err := a.planner()
			if err != nil {
				return err
			}
			planner.GenerateWeek(start)
			if err := p.fill(planner, filepath.Dir(args[0])); err != nil {
				return err
			}

			printSlots(a.out, planner.Slots())
			if dryRun {
				return nil
			}

			out, err := planner.SaveAll(ctx)
			if err != nil {
				return failure(err)
			}
			fmt.Fprintln(a.out, out.Message)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the week without uploading it")
	return cmd
}

func mealCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Find, edit and delete meals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search QUERY",
		Short: "Search meals by dish name",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			planner, err := a.planner()
			if err != nil {
				return err
			}
			meals, err := planner.Search(ctx, strings.Join(args, " "))
			if err != nil {
				return failure(err)
			}
			printMeals(a.out, meals, a.location)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete MEAL_ID",
		Short: "Delete a meal",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			id, err := mealID(args)
			if err != nil {
				return err
			}
			planner, err := a.planner()
			if err != nil {
				return err
			}
			if err := planner.DeleteMeal(ctx, id); err != nil {
				return failure(err)
			}
			fmt.Fprintln(a.out, "Meal deleted.")
			return nil
		}),
	})

	cmd.AddCommand(mealEditCmd(opts))
	return cmd
}

func mealEditCmd(opts *options) *cobra.Command {
	var dish, description, image string
	var cmd *cobra.Command
	cmd = &cobra.Command{
		Use:   "edit MEAL_ID",
		Short: "Change a meal's dish, description or picture",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(ctx context.Context, a *app, args []string) error {
			id, err := mealID(args)
			if err != nil {
				return err
			}
			planner, err := a.planner()
			if err != nil {
				return err
			}
			meal, err := planner.GetMeal(ctx, id)
			if err != nil {
				return failure(err)
			}

			in := &mealplanner.UpdateMealInput{
				ID:          meal.ID,
				MealDate:    meal.MealDate.Time,
				MealType:    meal.MealType,
				DishName:    meal.DishName,
				Description: meal.Description,
				ImageURL:    meal.ImageURL,
			}
			flags := cmd.Flags()
			if flags.Changed("dish") {
				in.DishName = dish
			}
			if flags.Changed("description") {
				in.Description = description
			}
			if image != "" {
				if in.Image, err = loadImage(image); err != nil {
					return err
				}
			}

			if err := planner.UpdateMeal(ctx, in); err != nil {
				return failure(err)
			}
			fmt.Fprintf(a.out, "Meal #%d updated.\n", id)
			return nil
		}),
	}
	cmd.Flags().StringVar(&dish, "dish", "", "Dish name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&image, "image", "", "Path to a new picture")
	return cmd
}

func adminLatePlatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "late-plates",
		Short: "Show today's late plate requests",
		Args:  cobra.NoArgs,
		RunE: run(opts, func(ctx context.Context, a *app, _ []string) error {
			svc, err := lateplates.New(&lateplates.Config{
				Requester: a.store.Client(),
				Viewer:    a.store,
				Clock:     a.clock,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			defer svc.Close()
			if err := svc.Load(ctx); err != nil {
				return failure(err)
			}
			printLatePlates(a.out, a.palette(ctx), svc.Snapshot())
			return nil
		}),
	}
}
