package entity

// Meal is a logged food entry. Time is an RFC 3339 string so day-window
// queries can compare lexically, matching the replace-by-key semantics.
type Meal struct {
	ID       string  `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID   string  `gorm:"column:user_id;size:190;index:idx_meals_user" json:"userId"`
	Name     string  `gorm:"column:name" json:"name"`
	Calories int     `gorm:"column:calories" json:"calories"`
	Protein  float64 `gorm:"column:protein" json:"protein"`
	Carbs    float64 `gorm:"column:carbs" json:"carbs"`
	Fat      float64 `gorm:"column:fat" json:"fat"`
	Time     string  `gorm:"column:time;index:idx_meals_time" json:"time"`
	Image    string  `gorm:"column:image" json:"image"`
	Synced   int     `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (Meal) TableName() string {
	return "meals"
}

// CompletedWorkout records a finished workout session.
type CompletedWorkout struct {
	ID        string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID    string `gorm:"column:user_id;size:190;index:idx_completed_workouts_user" json:"userId"`
	WorkoutID string `gorm:"column:workout_id;size:190" json:"workoutId"`
	Date      string `gorm:"column:date" json:"date"`
	Duration  int    `gorm:"column:duration" json:"duration"`
	Calories  int    `gorm:"column:calories" json:"calories"`
	Synced    int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (CompletedWorkout) TableName() string {
	return "completed_workouts"
}

// CustomWorkout is a user-built workout. Exercises are stored as a JSON
// array exactly as supplied.
type CustomWorkout struct {
	ID            string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID        string `gorm:"column:user_id;size:190;index:idx_custom_workouts_user" json:"userId"`
	Title         string `gorm:"column:title" json:"title"`
	Description   string `gorm:"column:description" json:"description"`
	Category      string `gorm:"column:category" json:"category"`
	Difficulty    string `gorm:"column:difficulty" json:"difficulty"`
	Duration      int    `gorm:"column:duration" json:"duration"`
	Calories      int    `gorm:"column:calories" json:"calories"`
	ExercisesJSON string `gorm:"column:exercises_json;type:text" json:"-"`
	Synced        int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (CustomWorkout) TableName() string {
	return "custom_workouts"
}

// ProgramEnrollment tracks a user's progress through a program.
type ProgramEnrollment struct {
	ID          string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID      string `gorm:"column:user_id;size:190;index:idx_user_programs_user" json:"userId"`
	ProgramID   string `gorm:"column:program_id;size:190" json:"programId"`
	Status      string `gorm:"column:status" json:"status"`
	StartDate   string `gorm:"column:start_date" json:"startDate"`
	CurrentWeek int    `gorm:"column:current_week" json:"currentWeek"`
	CurrentDay  int    `gorm:"column:current_day" json:"currentDay"`
	Synced      int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (ProgramEnrollment) TableName() string {
	return "user_programs"
}

// ExerciseRecord tracks a personal best for one exercise.
type ExerciseRecord struct {
	ID           string  `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID       string  `gorm:"column:user_id;size:190;index:idx_workout_progress_user" json:"userId"`
	ExerciseName string  `gorm:"column:exercise_name" json:"exerciseName"`
	MaxWeight    float64 `gorm:"column:max_weight" json:"maxWeight"`
	MaxReps      int     `gorm:"column:max_reps" json:"maxReps"`
	Date         string  `gorm:"column:date" json:"date"`
	Synced       int     `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (ExerciseRecord) TableName() string {
	return "workout_progress"
}

// AchievementUnlock records that a user earned an achievement. Unlocks are
// pulled from the server already confirmed.
type AchievementUnlock struct {
	ID            string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID        string `gorm:"column:user_id;size:190;index:idx_achievements_user" json:"userId"`
	AchievementID string `gorm:"column:achievement_id;size:190" json:"achievementId"`
	UnlockedAt    string `gorm:"column:unlocked_at" json:"unlockedAt"`
	Synced        int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (AchievementUnlock) TableName() string {
	return "achievements"
}
