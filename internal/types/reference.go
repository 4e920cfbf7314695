package types

// Gender values accepted by the employee form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists the accepted gender values in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// States is the fixed list of US states offered by the employee form.
var States = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming",
}

// SeedEmployees returns a fresh copy of the sample records used when the
// durable slot is empty or unreadable.
func SeedEmployees() []Employee {
	return []Employee{
		{
			ID:           1,
			FullName:     "John Doe",
			Gender:       GenderMale,
			DOB:          "1990-05-15",
			State:        "California",
			ProfileImage: "https://api.dicebear.com/7.x/avataaars/svg?seed=John",
			IsActive:     true,
		},
		{
			ID:           2,
			FullName:     "Jane Smith",
			Gender:       GenderFemale,
			DOB:          "1988-08-22",
			State:        "Texas",
			ProfileImage: "https://api.dicebear.com/7.x/avataaars/svg?seed=Jane",
			IsActive:     true,
		},
		{
			ID:           3,
			FullName:     "Michael Johnson",
			Gender:       GenderMale,
			DOB:          "1992-03-10",
			State:        "New York",
			ProfileImage: "https://api.dicebear.com/7.x/avataaars/svg?seed=Michael",
			IsActive:     false,
		},
	}
}
