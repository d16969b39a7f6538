package dto

type ReservationListDTO struct {
	ID              uint     `json:"id"`
	ReservationCode string   `json:"reservation_code"`
	ShiftID         uint     `json:"shift_id"`
	SlotTime        string   `json:"slot_time"`
	PartySize       int      `json:"party_size"`
	Tables          []uint   `json:"tables"`
	Status          string   `json:"status"`
	Source          string   `json:"source"`
	CustomerName    string   `json:"customer_name"`
	CustomerPhone   string   `json:"customer_phone"`
	Notes           string   `json:"notes"`
	Tags            []string `json:"tags"`
}

// PublicReservationDTO é o que o cliente vê ao consultar pelo código.
type PublicReservationDTO struct {
	ReservationCode string `json:"reservation_code"`
	RestaurantName  string `json:"restaurant_name"`
	Date            string `json:"date"`
	SlotTime        string `json:"slot_time"`
	PartySize       int    `json:"party_size"`
	Status          string `json:"status"`
	CustomerName    string `json:"customer_name"`
	Notes           string `json:"notes"`
}
