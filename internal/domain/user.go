package domain

// User Model
type User struct {
	ID          uint   `gorm:"primaryKey"`      // Primary key
	Username    string `gorm:"unique;not null"` // Unique username
	Email       string `gorm:"size:254"`        // Email address
	FirstName   string `gorm:"size:150"`        // First name
	LastName    string `gorm:"size:150"`        // Last name
	PhoneNumber string `gorm:"size:20"`         // Phone number
	Address     string // Postal address
	Password    string `gorm:"not null"`      // Hashed password
	IsStaff     bool   `gorm:"default:false"` // Staff flag for elevated privileges
}
