package entity

// UserProfile mirrors the authoritative server profile. Local edits mark it
// pending until the next profile push succeeds.
type UserProfile struct {
	UID           string  `gorm:"column:uid;primaryKey;size:190;not null" json:"uid"`
	Name          string  `gorm:"column:name" json:"name"`
	Email         string  `gorm:"column:email" json:"email"`
	HasOnboarded  bool    `gorm:"column:has_onboarded;not null;default:false" json:"hasOnboarded"`
	Weight        float64 `gorm:"column:weight" json:"weight"`
	Height        float64 `gorm:"column:height" json:"height"`
	Age           int     `gorm:"column:age" json:"age"`
	Gender        string  `gorm:"column:gender" json:"gender"`
	Goal          string  `gorm:"column:goal" json:"goal"`
	ActivityLevel string  `gorm:"column:activity_level" json:"activityLevel"`
	TargetWeight  float64 `gorm:"column:target_weight" json:"targetWeight"`
	InitialWeight float64 `gorm:"column:initial_weight" json:"initialWeight"`
	Synced        int     `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (UserProfile) TableName() string {
	return "users"
}

// Preferences holds per-user app settings, keyed by user.
type Preferences struct {
	UserID          string `gorm:"column:user_id;primaryKey;size:190;not null" json:"userId"`
	WeightUnit      string `gorm:"column:weight_unit;default:kg" json:"weightUnit"`
	HeightUnit      string `gorm:"column:height_unit;default:cm" json:"heightUnit"`
	WorkoutReminder bool   `gorm:"column:workout_reminder;not null;default:false" json:"workoutReminder"`
	ReminderTime    string `gorm:"column:reminder_time" json:"reminderTime"`
	DailyGoalAlert  bool   `gorm:"column:daily_goal_alert;not null;default:true" json:"dailyGoalAlert"`
	Theme           string `gorm:"column:theme;default:dark" json:"theme"`
	CalorieGoal     int    `gorm:"column:calorie_goal;default:2000" json:"calorieGoal"`
	Synced          int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (Preferences) TableName() string {
	return "user_preferences"
}

// Notification is a locally cached in-app notification.
type Notification struct {
	ID        string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID    string `gorm:"column:user_id;size:190;index:idx_notifications_user" json:"userId"`
	Title     string `gorm:"column:title" json:"title"`
	Message   string `gorm:"column:message" json:"message"`
	Type      string `gorm:"column:type" json:"type"`
	Read      bool   `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt string `gorm:"column:created_at" json:"createdAt"`
	Synced    int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (Notification) TableName() string {
	return "notifications"
}
