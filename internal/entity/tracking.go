package entity

// DailyStats aggregates one user's day. The date component of the key is a
// device-local calendar date string (YYYY-MM-DD); there is exactly one row
// per user per date and each save replaces the whole row.
type DailyStats struct {
	UserID   string  `gorm:"column:user_id;primaryKey;size:190;not null" json:"userId"`
	Date     string  `gorm:"column:date;primaryKey;size:10;not null" json:"date"`
	Calories int     `gorm:"column:calories;not null;default:0" json:"calories"`
	Minutes  int     `gorm:"column:minutes;not null;default:0" json:"minutes"`
	Workouts int     `gorm:"column:workouts;not null;default:0" json:"workouts"`
	Water    int     `gorm:"column:water;not null;default:0" json:"water"`
	Sleep    float64 `gorm:"column:sleep;not null;default:0" json:"sleep"`
	Synced   int     `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (DailyStats) TableName() string {
	return "daily_stats"
}

// WaterLog is a single water intake entry.
type WaterLog struct {
	ID        string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID    string `gorm:"column:user_id;size:190;index:idx_water_logs_user" json:"userId"`
	Amount    int    `gorm:"column:amount" json:"amount"`
	Timestamp string `gorm:"column:timestamp;index:idx_water_logs_time" json:"timestamp"`
	Synced    int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (WaterLog) TableName() string {
	return "water_logs"
}

// SleepLog records one night of sleep.
type SleepLog struct {
	ID        string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID    string `gorm:"column:user_id;size:190;index:idx_sleep_logs_user" json:"userId"`
	SleepTime string `gorm:"column:sleep_time" json:"sleepTime"`
	WakeTime  string `gorm:"column:wake_time" json:"wakeTime"`
	Quality   string `gorm:"column:quality" json:"quality"`
	Notes     string `gorm:"column:notes" json:"notes"`
	Synced    int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (SleepLog) TableName() string {
	return "sleep_logs"
}

// BodyMeasurement is a body composition snapshot.
type BodyMeasurement struct {
	ID         string  `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID     string  `gorm:"column:user_id;size:190;index:idx_body_measurements_user" json:"userId"`
	Weight     float64 `gorm:"column:weight" json:"weight"`
	BodyFat    float64 `gorm:"column:body_fat" json:"bodyFat"`
	MuscleMass float64 `gorm:"column:muscle_mass" json:"muscleMass"`
	Chest      float64 `gorm:"column:chest" json:"chest"`
	Waist      float64 `gorm:"column:waist" json:"waist"`
	Hips       float64 `gorm:"column:hips" json:"hips"`
	Date       string  `gorm:"column:date" json:"date"`
	Synced     int     `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (BodyMeasurement) TableName() string {
	return "body_measurements"
}

// ChatMessage is one message in the coaching chat.
type ChatMessage struct {
	ID        string `gorm:"column:id;primaryKey;size:190;not null" json:"id"`
	UserID    string `gorm:"column:user_id;size:190;index:idx_chat_messages_user" json:"userId"`
	Text      string `gorm:"column:text;type:text" json:"text"`
	Sender    string `gorm:"column:sender" json:"sender"`
	Timestamp string `gorm:"column:timestamp;index:idx_chat_messages_time" json:"timestamp"`
	Synced    int    `gorm:"column:synced;not null;default:0" json:"-"`
}

// TableName provides the explicit table binding for GORM.
func (ChatMessage) TableName() string {
	return "chat_messages"
}
