package models

// Member is a registered service user.
type Member struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Activity is an organization event members can sign up for.
type Activity struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"startsAt,omitempty"` // YYYY-MM-DD HH:MM
	Capacity    int    `json:"capacity,omitempty"`
}

// CareAppointment is a caregiver visit booking.
type CareAppointment struct {
	ID          int64  `json:"id"`
	MemberID    int64  `json:"memberId"`
	CaregiverID int64  `json:"caregiverId"`
	Date        string `json:"date"` // YYYY-MM-DD
	TimeSlot    string `json:"timeSlot,omitempty"`
	Note        string `json:"note,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ShopItem is an assistive-device shop listing.
type ShopItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}

// Zone is an administrative area used for coarse fare lookup.
type Zone struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
