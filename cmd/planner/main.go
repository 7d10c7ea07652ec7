// Package main provides the meal plan command line entry point
// This demonstrates clean architecture with proper dependency injection
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/nourish/planner/internal/domain/catalog"
	"github.com/nourish/planner/internal/infrastructure/container"
	"github.com/nourish/planner/internal/ports/inbound"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: planner <user-id>")
		os.Exit(2)
	}

	userID, err := uuid.Parse(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid user id %q: %v", os.Args[1], err)
	}

	var service inbound.MealplanService

	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's
		container.Module,
		fx.Populate(&service),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	plan, err := service.PlanDay(context.Background(), userID)
	if err != nil {
		log.Fatalf("Failed to build plan: %v", err)
	}

	if plan.Infeasible {
		fmt.Println("No feasible plan for today.")
	} else {
		fmt.Printf("Plan for today (%d items):\n", len(plan.Quantities))
		for id, quantity := range plan.Quantities {
			fmt.Printf("  %s  x%d\n", id, quantity)
		}
		fmt.Printf("Totals: %.0f kcal, %.1fg protein, %.1fg fat, %.1fg carbs\n",
			plan.NutrientTotals[catalog.EnergyNutrientID],
			plan.NutrientTotals[catalog.ProteinNutrientID],
			plan.NutrientTotals[catalog.FatNutrientID],
			plan.NutrientTotals[catalog.CarbohydrateNutrientID])
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatalf("Failed to stop application gracefully: %v", err)
	}
}
