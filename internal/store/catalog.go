package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// Catalog collections are server-owned. Each Replace* call upserts the
// fetched set by primary key; replaying the same batch is a no-op. Rows
// deleted on the server are not removed here, they persist until a later
// pull overwrites them.

// ReplaceFoods upserts the food library.
func (s *Store) ReplaceFoods(ctx context.Context, foods []entity.Food) error {
	const op = "store.replace_foods"
	if len(foods) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&foods).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(foods)))
	}
	return nil
}

// Foods returns up to limit foods from the cached library.
func (s *Store) Foods(ctx context.Context, limit int) ([]entity.Food, error) {
	const op = "store.foods"
	query := s.db.WithContext(ctx).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var foods []entity.Food
	if err := query.Find(&foods).Error; err != nil {
		return nil, s.fail(op, "query_failed", err)
	}
	return foods, nil
}

const foodSearchLimit = 50

// SearchFoods performs a case-insensitive substring match over food names.
// An empty query returns no rows.
func (s *Store) SearchFoods(ctx context.Context, query string) ([]entity.Food, error) {
	const op = "store.search_foods"
	if query == "" {
		return nil, nil
	}
	var foods []entity.Food
	err := s.db.WithContext(ctx).
		Where("name LIKE ?", "%"+query+"%").
		Limit(foodSearchLimit).
		Find(&foods).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("query", query))
	}
	return foods, nil
}

// ReplaceWorkouts upserts the workout library.
func (s *Store) ReplaceWorkouts(ctx context.Context, workouts []entity.Workout) error {
	const op = "store.replace_workouts"
	if len(workouts) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&workouts).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(workouts)))
	}
	return nil
}

// Workouts returns the cached workout library.
func (s *Store) Workouts(ctx context.Context) ([]entity.Workout, error) {
	const op = "store.workouts"
	var workouts []entity.Workout
	if err := s.db.WithContext(ctx).Find(&workouts).Error; err != nil {
		return nil, s.fail(op, "query_failed", err)
	}
	return workouts, nil
}

// ReplaceExercises upserts the exercises belonging to library workouts.
func (s *Store) ReplaceExercises(ctx context.Context, exercises []entity.Exercise) error {
	const op = "store.replace_exercises"
	if len(exercises) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&exercises).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(exercises)))
	}
	return nil
}

// Exercises returns the cached exercises for one workout.
func (s *Store) Exercises(ctx context.Context, workoutID string) ([]entity.Exercise, error) {
	const op = "store.exercises"
	var exercises []entity.Exercise
	err := s.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Find(&exercises).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("workout_id", workoutID))
	}
	return exercises, nil
}

// ReplaceRecipes upserts the recipe library.
func (s *Store) ReplaceRecipes(ctx context.Context, recipes []entity.Recipe) error {
	const op = "store.replace_recipes"
	if len(recipes) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&recipes).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(recipes)))
	}
	return nil
}

// Recipes returns the cached recipe library.
func (s *Store) Recipes(ctx context.Context) ([]entity.Recipe, error) {
	const op = "store.recipes"
	var recipes []entity.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, s.fail(op, "query_failed", err)
	}
	return recipes, nil
}

// ReplacePrograms upserts the program library.
func (s *Store) ReplacePrograms(ctx context.Context, programs []entity.Program) error {
	const op = "store.replace_programs"
	if len(programs) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&programs).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(programs)))
	}
	return nil
}

// Programs returns the cached program library.
func (s *Store) Programs(ctx context.Context) ([]entity.Program, error) {
	const op = "store.programs"
	var programs []entity.Program
	if err := s.db.WithContext(ctx).Find(&programs).Error; err != nil {
		return nil, s.fail(op, "query_failed", err)
	}
	return programs, nil
}

// ReplaceProgramWorkouts upserts the program-to-workout schedule links.
func (s *Store) ReplaceProgramWorkouts(ctx context.Context, links []entity.ProgramWorkout) error {
	const op = "store.replace_program_workouts"
	if len(links) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&links).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(links)))
	}
	return nil
}

// ProgramWorkouts returns the cached schedule links for one program.
func (s *Store) ProgramWorkouts(ctx context.Context, programID string) ([]entity.ProgramWorkout, error) {
	const op = "store.program_workouts"
	var links []entity.ProgramWorkout
	err := s.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("week_number ASC, day_number ASC").
		Find(&links).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("program_id", programID))
	}
	return links, nil
}

// ReplaceAchievementDefinitions upserts the achievement catalog.
func (s *Store) ReplaceAchievementDefinitions(ctx context.Context, definitions []entity.AchievementDefinition) error {
	const op = "store.replace_achievement_definitions"
	if len(definitions) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&definitions).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(definitions)))
	}
	return nil
}

// AchievementDefinitions returns the cached achievement catalog.
func (s *Store) AchievementDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error) {
	const op = "store.achievement_definitions"
	var definitions []entity.AchievementDefinition
	if err := s.db.WithContext(ctx).Find(&definitions).Error; err != nil {
		return nil, s.fail(op, "query_failed", err)
	}
	return definitions, nil
}
