package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealweek/backend/internal/model"
)

func lines(prices ...float64) []model.CartLine {
	out := make([]model.CartLine, len(prices))
	for i, p := range prices {
		out[i] = model.CartLine{EstPrice: p}
	}
	return out
}

func TestNoBudgetAlwaysPasses(t *testing.T) {
	plan := model.WeeklyPlan{BudgetType: model.BudgetNone}
	assert.True(t, IsWithinBudget(lines(1000), lines(500), plan, 3))

	plan = model.WeeklyPlan{BudgetType: model.BudgetPerWeek, BudgetValue: 0}
	assert.True(t, IsWithinBudget(lines(1000), nil, plan, 1))
}

func TestPerWeekBudget(t *testing.T) {
	plan := model.WeeklyPlan{BudgetType: model.BudgetPerWeek, BudgetValue: 45.00}
	// sum equals budget: within epsilon
	assert.True(t, IsWithinBudget(lines(25, 15), lines(5), plan, 2))

	plan.BudgetValue = 44.00
	assert.False(t, IsWithinBudget(lines(25, 15), lines(5), plan, 2))
}

func TestPerMealBudget(t *testing.T) {
	plan := model.WeeklyPlan{BudgetType: model.BudgetPerMeal, BudgetValue: 20.00}

	assert.True(t, IsWithinBudget(lines(19.99, 20.00), nil, plan, 2))
	assert.False(t, IsWithinBudget(lines(20.01, 20.01), nil, plan, 2))
	// extras never count against a per-meal budget
	assert.True(t, IsWithinBudget(lines(39.99), lines(500), plan, 2))
}

func TestPerMealBudgetWithNoApprovedMenus(t *testing.T) {
	plan := model.WeeklyPlan{BudgetType: model.BudgetPerMeal, BudgetValue: 20.00}
	// approved count clamps to one meal
	assert.True(t, IsWithinBudget(lines(20.00), nil, plan, 0))
	assert.False(t, IsWithinBudget(lines(20.02), nil, plan, 0))
}

func TestSumLinesUnrounded(t *testing.T) {
	assert.InDelta(t, 0.30000000000000004, SumLines(lines(0.1, 0.2)), 1e-15)
}
