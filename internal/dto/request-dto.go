package dto

type CreateBloodRequest struct {
	BloodType      string   `json:"blood_type"`
	UnitsRequired  uint     `json:"units_required"`
	Urgency        string   `json:"urgency"`
	AdditionalInfo string   `json:"additional_info"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}
