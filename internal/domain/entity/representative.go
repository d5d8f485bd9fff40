package entity

// Representative is a sales representative. ObjectID is the backend's opaque id,
// ID the natural id typed in by staff.
type Representative struct {
	ObjectID      string `json:"_id"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	PhoneNumber   string `json:"phoneNumber"`
	Notes         string `json:"notes"`
	IsActive      bool   `json:"isActive"`
	PatientsCount int    `json:"patientsCount"`
	DoctorsCount  int    `json:"doctorsCount"`
}

// RepresentativeStats is the payload of GET /representatives/:id/stats.
type RepresentativeStats struct {
	PatientsCount    int            `json:"patientsCount"`
	DoctorsCount     int            `json:"doctorsCount"`
	ScansCount       int            `json:"scansCount"`
	TotalRevenue     float64        `json:"totalRevenue"`
	MonthlyReferrals []MonthlyCount `json:"monthlyReferrals"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
