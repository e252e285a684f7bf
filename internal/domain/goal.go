package domain

import (
	"strings"
	"time"
)

// StandardCategories are the built-in task categories.
var StandardCategories = []string{"study", "project", "chores", "personal", "social"}

// GoalPalette is cycled through when new goals are created.
var GoalPalette = []string{"#7c3aed", "#0284c7", "#db2777", "#16a34a", "#ea580c", "#a855f7"}

// Goal is a user-defined task category.
type Goal struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

// Slug is the category value stored on tasks that belong to the goal.
func (g Goal) Slug() string {
	return GoalSlug(g.Name)
}

func GoalSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
