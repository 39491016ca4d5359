package domain

// Rental statuses the code itself branches on. The column stays free text:
// staff may write any value through the status override.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Rental Model: links a user to a car for a date range
type Rental struct {
	ID        uint     `gorm:"primaryKey"` // Primary key
	UserID    uint     `gorm:"not null"`   // FK to User
	User      User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Renting user; deleting the user deletes the rental
	CarID     uint     `gorm:"not null"`   // FK to Car
	Car       Car      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Rented car; deleting the car deletes the rental
	StartDate Date     `gorm:"type:date"`  // First rental day
	EndDate   Date     `gorm:"type:date"`  // Last rental day
	TotalCost *float64 // Total cost, unset unless entered by staff
	Status    string   `gorm:"size:50;default:pending"` // Lifecycle status
}
