package domain

// Admin Model: one-to-one extension record on User
type Admin struct {
	UserID      uint   `gorm:"primaryKey"`                                    // Primary key, also FK to User
	User        User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Linked user; deleting the user deletes the admin record
	Permissions string `gorm:"size:255"`                                      // Free-text permissions
}
