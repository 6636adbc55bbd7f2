package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PrakritiProfile is the percentage breakdown produced by the classifier.
// It is written wholesale on every classification, never merged.
type PrakritiProfile struct {
	Vata     float64 `json:"vata"`
	Pitta    float64 `json:"pitta"`
	Kapha    float64 `json:"kapha"`
	Dominant string  `json:"dominant"`
}

// WeeklyTask is one dinacharya ritual in a user's weekly plan. CompletedAt
// holds a human-readable label ("02 Jan, 03:04 PM") and is empty while the
// task is not done.
type WeeklyTask struct {
	ID          string `json:"id"`
	TaskEN      string `json:"task_en"`
	TaskKN      string `json:"task_kn"`
	DescEN      string `json:"desc_en"`
	DescKN      string `json:"desc_kn"`
	Done        bool   `json:"done"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// GrowthSample is appended to a user's growth history on every
// score-affecting event.
type GrowthSample struct {
	Score int       `json:"score"`
	Time  time.Time `json:"time"`
}

// AssessmentEntry records one completed dialogue traversal.
type AssessmentEntry struct {
	Timestamp   string `json:"timestamp"`
	Prakriti    string `json:"prakriti"`
	Agni        string `json:"agni"`
	Message     string `json:"message"`
	NodeReached string `json:"node_reached"`
}

// User is the per-user document. Phone is the sole lookup key for every
// operation in the API.
type User struct {
	ID                 uuid.UUID                            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Phone              string                               `gorm:"uniqueIndex;not null;column:phone" json:"phone"`
	FullName           string                               `gorm:"not null;column:fullname" json:"fullname"`
	Password           string                               `gorm:"not null;column:password" json:"-"`
	Gender             string                               `gorm:"column:gender" json:"gender"`
	OnboardingComplete bool                                 `gorm:"column:onboarding_complete" json:"onboarding_complete"`
	ReportUploaded     bool                                 `gorm:"column:report_uploaded" json:"report_uploaded"`
	OjasScore          int                                  `gorm:"column:ojas_score" json:"ojas_score"`
	CurrentDay         int                                  `gorm:"column:current_day" json:"current_day"`
	Prakriti           datatypes.JSONType[PrakritiProfile]  `gorm:"column:prakriti" json:"prakriti"`
	WeeklyTasks        datatypes.JSONSlice[WeeklyTask]      `gorm:"column:weekly_tasks" json:"weekly_tasks"`
	GrowthHistory      datatypes.JSONSlice[GrowthSample]    `gorm:"column:growth_history" json:"growth_history"`
	AssessmentHistory  datatypes.JSONSlice[AssessmentEntry] `gorm:"column:assessment_history" json:"assessment_history"`
	CreatedAt          time.Time                            `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time                            `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
