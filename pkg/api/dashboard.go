package api

// DashboardStats представляет сводку по отделению для главного экрана
type DashboardStats struct {
	TotalPatients     int     `json:"total_patients"`
	CriticalPatients  int     `json:"critical_patients"`
	SurgeriesToday    int     `json:"surgeries_today"`
	AppointmentsToday int     `json:"appointments_today"`
	OccupancyRate     float64 `json:"occupancy_rate"` // доля занятых коек, 0..1
}
