package booking

import "time"

// Request represents an appointment submission from the web form.
// Every field except AdditionalInfo is required.
type Request struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contactNumber"`
	Service         string `json:"service"`
	AppointmentDate string `json:"appointmentDate"`
	DateOfBirth     string `json:"dateOfBirth"`
	TimeSlot        string `json:"timeSlot"`
	EmergencyName   string `json:"emergencyName"`
	EmergencyNumber string `json:"emergencyNumber"`
	AdditionalInfo  string `json:"additionalInfo"`
}

// requiredFields fixes the enumeration order for validation so the first
// missing field reported is deterministic.
var requiredFields = []string{
	"fullName",
	"email",
	"contactNumber",
	"service",
	"appointmentDate",
	"dateOfBirth",
	"timeSlot",
	"emergencyName",
	"emergencyNumber",
}

func (r *Request) fieldValue(name string) string {
	switch name {
	case "fullName":
		return r.FullName
	case "email":
		return r.Email
	case "contactNumber":
		return r.ContactNumber
	case "service":
		return r.Service
	case "appointmentDate":
		return r.AppointmentDate
	case "dateOfBirth":
		return r.DateOfBirth
	case "timeSlot":
		return r.TimeSlot
	case "emergencyName":
		return r.EmergencyName
	case "emergencyNumber":
		return r.EmergencyNumber
	default:
		return ""
	}
}

// Validate checks that every required field is present and non-empty,
// reporting the first missing field in enumeration order. It has no side
// effects and must be called before any store access.
func (r *Request) Validate() error {
	for _, name := range requiredFields {
		if r.fieldValue(name) == "" {
			return &MissingFieldError{Field: name}
		}
	}
	return nil
}

// Booking is the durable record of an accepted appointment, keyed by the
// requester's full name. It is written exactly once and never updated.
type Booking struct {
	FullName        string `dynamodbav:"fullName" json:"fullName"`
	Email           string `dynamodbav:"email" json:"email"`
	ContactNumber   string `dynamodbav:"contactNumber" json:"contactNumber"`
	Service         string `dynamodbav:"service" json:"service"`
	AppointmentDate string `dynamodbav:"appointmentDate" json:"appointmentDate"`
	DateOfBirth     string `dynamodbav:"dateOfBirth" json:"dateOfBirth"`
	TimeSlot        string `dynamodbav:"timeSlot" json:"timeSlot"`
	EmergencyName   string `dynamodbav:"emergencyName" json:"emergencyName"`
	EmergencyNumber string `dynamodbav:"emergencyNumber" json:"emergencyNumber"`
	AdditionalInfo  string `dynamodbav:"additionalInfo" json:"additionalInfo"`
	CreatedAt       string `dynamodbav:"createdAt" json:"createdAt"`
}

// NewBooking builds the record to persist from a validated request,
// canonicalizing the time slot for storage and for the confirmation email.
func NewBooking(r *Request) *Booking {
	return &Booking{
		FullName:        r.FullName,
		Email:           r.Email,
		ContactNumber:   r.ContactNumber,
		Service:         r.Service,
		AppointmentDate: r.AppointmentDate,
		DateOfBirth:     r.DateOfBirth,
		TimeSlot:        NormalizeTimeSlot(r.TimeSlot),
		EmergencyName:   r.EmergencyName,
		EmergencyNumber: r.EmergencyNumber,
		AdditionalInfo:  r.AdditionalInfo,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}
