package dto

type RepresentativeRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phoneNumber"`
	Notes       string `json:"notes"`
	IsActive    bool   `json:"isActive"`
}

type BranchRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Manager  string `json:"manager"`
	IsActive bool   `json:"isActive"`
}
