package entity

// DashboardAnalytics holds aggregates computed by the backend.
type DashboardAnalytics struct {
	TotalPatients        int            `json:"totalPatients"`
	TotalAppointments    int            `json:"totalAppointments"`
	TodayAppointments    int            `json:"todayAppointments"`
	TotalScans           int            `json:"totalScans"`
	TotalDoctors         int            `json:"totalDoctors"`
	LowStockItems        int            `json:"lowStockItems"`
	Revenue              float64        `json:"revenue"`
	AppointmentsByStatus map[string]int `json:"appointmentsByStatus"`
	TopScans             []NamedCount   `json:"topScans"`
	TopDoctors           []NamedCount   `json:"topDoctors"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
