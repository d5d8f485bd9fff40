package dto

type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
}

type DoctorRequest struct {
	Name           string         `json:"name"`
	Specialization string         `json:"specialization"`
	LicenseNumber  string         `json:"licenseNumber"`
	ContactNumber  string         `json:"contactNumber"`
	Email          string         `json:"email,omitempty"`
	Address        AddressRequest `json:"address"`
	IsActive       bool           `json:"isActive"`
}

// RadiologistUpdateRequest goes to PUT /users/:id. The username is not part
// of it and stays as registered.
type RadiologistUpdateRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Gender        string `json:"gender"`
	Age           int    `json:"age"`
	PhoneNumber   string `json:"phoneNumber"`
	LicenseNumber string `json:"licenseNumber"`
	IsActive      bool   `json:"isActive"`
}
