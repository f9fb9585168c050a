// Package planner evaluates the weekly plan's budget constraint against the
// current cart. The predicate is pure and recomputed on every read; cart and
// menu state change independently of the plan, so caching it would go stale.
package planner

import (
	"github.com/mealweek/backend/internal/model"
)

// BudgetEpsilon absorbs floating-point rounding in budget comparisons.
// Hard-coded policy constant carried over from the product.
const BudgetEpsilon = 0.01

// SumLines totals the estimated prices of a line collection without any
// rounding. Display rounding happens in the cart's totals, never here.
func SumLines(lines []model.CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.EstPrice
	}
	return sum
}

// IsWithinBudget reports whether the cart fits the weekly plan's budget.
// No budget type or an unset value always passes. Per-week compares the
// combined meal and extra totals; per-meal compares the meal total against
// the per-meal value times the approved menu count (at least one).
func IsWithinBudget(mealLines, extraLines []model.CartLine, plan model.WeeklyPlan, approvedMenuCount int) bool {
	if plan.BudgetType == model.BudgetNone || plan.BudgetType == "" || plan.BudgetValue <= 0 {
		return true
	}

	mealTotal := SumLines(mealLines)

	switch plan.BudgetType {
	case model.BudgetPerWeek:
		return mealTotal+SumLines(extraLines) <= plan.BudgetValue+BudgetEpsilon
	case model.BudgetPerMeal:
		meals := approvedMenuCount
		if meals < 1 {
			meals = 1
		}
		return mealTotal <= plan.BudgetValue*float64(meals)+BudgetEpsilon
	default:
		return true
	}
}
