package entity

// Catalog entities are owned by the remote service. The device never
// originates them, so they carry no sync flag; every pull replaces them
// wholesale by primary key.

// Food is a nutrition catalog entry.
type Food struct {
	ID       string  `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Name     string  `gorm:"column:name;index:idx_foods_name" json:"name"`
	Calories int     `gorm:"column:calories" json:"calories"`
	Protein  float64 `gorm:"column:protein" json:"protein"`
	Carbs    float64 `gorm:"column:carbs" json:"carbs"`
	Fat      float64 `gorm:"column:fat" json:"fat"`
	Image    string  `gorm:"column:image" json:"image"`
}

// TableName provides the explicit table binding for GORM.
func (Food) TableName() string {
	return "foods"
}

// Workout is a library workout definition.
type Workout struct {
	ID          string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Title       string `gorm:"column:title" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	Category    string `gorm:"column:category" json:"category"`
	Difficulty  string `gorm:"column:difficulty" json:"difficulty"`
	Duration    int    `gorm:"column:duration" json:"duration"`
	Calories    int    `gorm:"column:calories" json:"calories"`
	Icon        string `gorm:"column:icon" json:"icon"`
	PayloadJSON string `gorm:"column:payload_json;type:text" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (Workout) TableName() string {
	return "workouts"
}

// Exercise belongs to a library workout.
type Exercise struct {
	ID           string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	WorkoutID    string `gorm:"column:workout_id;size:190;index:idx_exercises_workout" json:"workoutId"`
	Name         string `gorm:"column:name" json:"name"`
	Sets         int    `gorm:"column:sets" json:"sets"`
	Reps         string `gorm:"column:reps" json:"reps"`
	Duration     int    `gorm:"column:duration" json:"duration"`
	RestTime     int    `gorm:"column:rest_time" json:"restTime"`
	Instructions string `gorm:"column:instructions;type:text" json:"instructions"`
}

// TableName provides the explicit table binding for GORM.
func (Exercise) TableName() string {
	return "exercises"
}

// Recipe is a library recipe. Ingredients and instructions arrive as JSON
// arrays and are stored verbatim.
type Recipe struct {
	ID               string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Title            string `gorm:"column:title" json:"title"`
	Description      string `gorm:"column:description" json:"description"`
	Calories         int    `gorm:"column:calories" json:"calories"`
	Protein          int    `gorm:"column:protein" json:"protein"`
	Carbs            int    `gorm:"column:carbs" json:"carbs"`
	Fat              int    `gorm:"column:fat" json:"fat"`
	IngredientsJSON  string `gorm:"column:ingredients_json;type:text" json:"-"`
	InstructionsJSON string `gorm:"column:instructions_json;type:text" json:"-"`
	Category         string `gorm:"column:category" json:"category"`
	Difficulty       string `gorm:"column:difficulty" json:"difficulty"`
	PrepTime         int    `gorm:"column:prep_time" json:"prepTime"`
	IsPremium        bool   `gorm:"column:is_premium;not null;default:false" json:"isPremium"`
}

// TableName provides the explicit table binding for GORM.
func (Recipe) TableName() string {
	return "recipes"
}

// Program is a multi-week training program.
type Program struct {
	ID          string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Title       string `gorm:"column:title" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	Category    string `gorm:"column:category" json:"category"`
	Difficulty  string `gorm:"column:difficulty" json:"difficulty"`
	Duration    int    `gorm:"column:duration" json:"duration"`
	Goal        string `gorm:"column:goal" json:"goal"`
	IsPremium   bool   `gorm:"column:is_premium;not null;default:false" json:"isPremium"`
}

// TableName provides the explicit table binding for GORM.
func (Program) TableName() string {
	return "programs"
}

// ProgramWorkout links a workout into a program's weekly schedule.
type ProgramWorkout struct {
	ID         string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	ProgramID  string `gorm:"column:program_id;size:190;index:idx_program_workouts_program" json:"programId"`
	WorkoutID  string `gorm:"column:workout_id;size:190" json:"workoutId"`
	WeekNumber int    `gorm:"column:week_number" json:"weekNumber"`
	DayNumber  int    `gorm:"column:day_number" json:"dayNumber"`
}

// TableName provides the explicit table binding for GORM.
func (ProgramWorkout) TableName() string {
	return "program_workouts"
}

// AchievementDefinition describes an achievement users can unlock.
type AchievementDefinition struct {
	ID          string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	Title       string `gorm:"column:title" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	Icon        string `gorm:"column:icon" json:"icon"`
	Requirement string `gorm:"column:requirement" json:"requirement"`
	Category    string `gorm:"column:category" json:"category"`
}

// TableName provides the explicit table binding for GORM.
func (AchievementDefinition) TableName() string {
	return "achievement_definitions"
}
