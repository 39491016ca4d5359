package api

import (
	"errors"
	"reflect" // Struct tag inspection for validator field names
	"strings" // String manipulation

	"rental_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Access to gin's validator engine
	"github.com/go-playground/validator/v10" // Field-level validation errors
	"golang.org/x/crypto/bcrypt"             // Password hashing
)

// Report validation failures under the json field names, not the Go ones
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// fieldErrors converts a binding failure into a per-field error response body
func fieldErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := gin.H{}
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe) // One message per failing field
		}
		return gin.H{"errors": fields}
	}
	return gin.H{"error": "Invalid request"} // Malformed body
}

// fieldMessage renders a single validation failure
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "datetime":
		return "Date must be in YYYY-MM-DD format."
	case "gt":
		return "Value must be greater than " + fe.Param() + "."
	}
	return "Invalid value."
}

// requiredError builds the per-field body for fields a full update must carry
func requiredError(fields ...string) gin.H {
	missing := gin.H{}
	for _, f := range fields {
		missing[f] = "This field is required."
	}
	return gin.H{"errors": missing}
}

// --- User mappings ---

// UserResponse is the full read representation of a user (never the password)
type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// userResponse maps a stored user to its read representation
func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
	}
}

// RegistrationInput is the restricted write contract for creating a user:
// the password is write-only, id and is_staff are not client-settable.
type RegistrationInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// user hashes the password and builds the user record to store
func (in *RegistrationInput) user() (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Password:    string(hash), // Store the hash, never the plaintext
	}, nil
}

// registeredResponse echoes the registration fields back (no id, no password)
func registeredResponse(u *domain.User) gin.H {
	return gin.H{
		"username":     u.Username,
		"email":        u.Email,
		"first_name":   u.FirstName,
		"last_name":    u.LastName,
		"phone_number": u.PhoneNumber,
		"address":      u.Address,
	}
}

// UserUpdateInput carries the writable user fields; nil means "not provided"
type UserUpdateInput struct {
	Username    *string `json:"username"`
	Email       *string `json:"email" binding:"omitempty,email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// apply copies the provided fields onto the stored user
func (in *UserUpdateInput) apply(u *domain.User) {
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
}

// --- Car mappings ---

// CarResponse is the read representation of a catalog car
type CarResponse struct {
	ID                 uint    `json:"id"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	Year               int     `json:"year"`
	Color              string  `json:"color"`
	LicensePlate       string  `json:"license_plate"`
	DailyRate          float64 `json:"daily_rate"`
	AvailabilityStatus string  `json:"availability_status"`
}

// carResponse maps a stored car to its read representation
func carResponse(car *domain.Car) CarResponse {
	return CarResponse{
		ID:                 car.ID,
		Make:               car.Make,
		Model:              car.Model,
		Year:               car.Year,
		Color:              car.Color,
		LicensePlate:       car.LicensePlate,
		DailyRate:          car.DailyRate,
		AvailabilityStatus: car.AvailabilityStatus,
	}
}

// carResponses maps a list of cars
func carResponses(cars []domain.Car) []CarResponse {
	out := make([]CarResponse, len(cars))
	for i := range cars {
		out[i] = carResponse(&cars[i])
	}
	return out
}

// CarInput carries the writable car fields; nil means "not provided"
type CarInput struct {
	Make               *string  `json:"make"`
	Model              *string  `json:"model"`
	Year               *int     `json:"year"`
	Color              *string  `json:"color"`
	LicensePlate       *string  `json:"license_plate"`
	DailyRate          *float64 `json:"daily_rate" binding:"omitempty,gt=0"`
	AvailabilityStatus *string  `json:"availability_status"`
}

// missingForCreate lists the required fields a create or full update omitted
func (in *CarInput) missingForCreate() []string {
	var missing []string
	if in.Make == nil {
		missing = append(missing, "make")
	}
	if in.Model == nil {
		missing = append(missing, "model")
	}
	if in.Year == nil {
		missing = append(missing, "year")
	}
	if in.Color == nil {
		missing = append(missing, "color")
	}
	if in.LicensePlate == nil {
		missing = append(missing, "license_plate")
	}
	if in.DailyRate == nil {
		missing = append(missing, "daily_rate")
	}
	return missing
}

// apply copies the provided fields onto the stored car
func (in *CarInput) apply(car *domain.Car) {
	if in.Make != nil {
		car.Make = *in.Make
	}
	if in.Model != nil {
		car.Model = *in.Model
	}
	if in.Year != nil {
		car.Year = *in.Year
	}
	if in.Color != nil {
		car.Color = *in.Color
	}
	if in.LicensePlate != nil {
		car.LicensePlate = *in.LicensePlate
	}
	if in.DailyRate != nil {
		car.DailyRate = *in.DailyRate
	}
	if in.AvailabilityStatus != nil {
		car.AvailabilityStatus = *in.AvailabilityStatus
	}
}

// --- Rental mappings ---

// RentalResponse is the read representation of a rental with its user and car
type RentalResponse struct {
	ID        uint         `json:"id"`
	User      UserResponse `json:"user"`
	Car       CarResponse  `json:"car"`
	StartDate domain.Date  `json:"start_date"`
	EndDate   domain.Date  `json:"end_date"`
	TotalCost *float64     `json:"total_cost"`
	Status    string       `json:"status"`
}

// rentalResponse maps a stored rental (with User and Car preloaded)
func rentalResponse(r *domain.Rental) RentalResponse {
	return RentalResponse{
		ID:        r.ID,
		User:      userResponse(&r.User),
		Car:       carResponse(&r.Car),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		TotalCost: r.TotalCost,
		Status:    r.Status,
	}
}

// rentalResponses maps a list of rentals
func rentalResponses(rentals []domain.Rental) []RentalResponse {
	out := make([]RentalResponse, len(rentals))
	for i := range rentals {
		out[i] = rentalResponse(&rentals[i])
	}
	return out
}

// RentalCreateInput is the restricted write contract for booking a rental:
// only the car and the date range; user and total_cost are never client-settable.
type RentalCreateInput struct {
	CarID     uint   `json:"car" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// RentalUpdateInput carries the staff-writable rental fields
type RentalUpdateInput struct {
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status    *string `json:"status"`
}

// apply copies the provided fields onto the stored rental
func (in *RentalUpdateInput) apply(r *domain.Rental) {
	if in.StartDate != nil {
		r.StartDate, _ = domain.ParseDate(*in.StartDate) // Format already validated by binding
	}
	if in.EndDate != nil {
		r.EndDate, _ = domain.ParseDate(*in.EndDate)
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
}
