package entity

// Address is the postal address substructure used by doctors and patients.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Doctor is a referring physician.
type Doctor struct {
	ObjectID              string  `json:"_id"`
	Name                  string  `json:"name"`
	Specialization        string  `json:"specialization"`
	LicenseNumber         string  `json:"licenseNumber"`
	ContactNumber         string  `json:"contactNumber"`
	Email                 string  `json:"email"`
	Address               Address `json:"address"`
	IsActive              bool    `json:"isActive"`
	TotalPatientsReferred int     `json:"totalPatientsReferred"`
	TotalScansReferred    int     `json:"totalScansReferred"`
}
