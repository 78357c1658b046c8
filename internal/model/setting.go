package model

// Setting defaults applied when a user's row is created lazily on first read.
const (
	DefaultReminderHours   = 24
	DefaultReminderMinutes = 60
	DefaultPrivacyMode     = "standard"
)

// Setting holds a user's notification and privacy preferences, one row per user.
type Setting struct {
	ID                    uint   `json:"id" gorm:"primaryKey"`
	UserID                uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	EmailNotifications    bool   `json:"email_notifications" gorm:"default:true"`
	PushNotifications     bool   `json:"push_notifications" gorm:"default:true"`
	ReminderBeforeHours   int    `json:"reminder_before_hours" gorm:"default:24"`
	ReminderBeforeMinutes int    `json:"reminder_before_minutes" gorm:"default:60"`
	PrivacyMode           string `json:"privacy_mode" gorm:"size:32;default:'standard'"`
	DataSharing           bool   `json:"data_sharing" gorm:"default:false"`
}

func (Setting) TableName() string { return "user_settings" }

// DefaultSetting returns the defaults row for a user, not yet persisted.
func DefaultSetting(userID uint) *Setting {
	return &Setting{
		UserID:                userID,
		EmailNotifications:    true,
		PushNotifications:     true,
		ReminderBeforeHours:   DefaultReminderHours,
		ReminderBeforeMinutes: DefaultReminderMinutes,
		PrivacyMode:           DefaultPrivacyMode,
		DataSharing:           false,
	}
}
