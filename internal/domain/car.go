package domain

// Car Model
type Car struct {
	ID                 uint    `gorm:"primaryKey"`               // Primary key
	Make               string  `gorm:"size:100"`                 // Manufacturer
	Model              string  `gorm:"size:100"`                 // Model name
	Year               int     // Model year
	Color              string  `gorm:"size:50"`                  // Color
	LicensePlate       string  `gorm:"size:20;unique"`           // Unique license plate
	DailyRate          float64 // Rental rate per day
	AvailabilityStatus string  `gorm:"size:50;default:available"` // Free-text availability status
}
