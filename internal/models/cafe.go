package models

import "time"

// Seat buckets a cafe can be listed under.
const (
	Seats0To10  = "0-10"
	Seats10To20 = "10-20"
	Seats20To30 = "20-30"
	Seats30To40 = "30-40"
	Seats40To50 = "40-50"
	Seats50Plus = "50+"
)

// SeatBuckets lists the seat buckets in display order.
var SeatBuckets = []string{Seats0To10, Seats10To20, Seats20To30, Seats30To40, Seats40To50, Seats50Plus}

// Cafe represents a cafe listing.
type Cafe struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:250;not null;uniqueIndex"`
	MapURL       string    `json:"map_url" gorm:"size:250;not null;uniqueIndex"`
	ImgURL       string    `json:"img_url" gorm:"size:250;not null"`
	Location     string    `json:"location" gorm:"size:250;not null"`
	HasSockets   bool      `json:"has_sockets" gorm:"not null;default:false"`
	HasToilet    bool      `json:"has_toilet" gorm:"not null;default:false"`
	HasWifi      bool      `json:"has_wifi" gorm:"not null;default:false"`
	CanTakeCalls bool      `json:"can_take_calls" gorm:"not null;default:false"`
	Seats        string    `json:"seats" gorm:"size:250;not null"`
	CoffeePrice  string    `json:"coffee_price" gorm:"size:250;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CafeInput is the validated, user-settable part of a Cafe.
type CafeInput struct {
	Name         string `json:"name"`
	MapURL       string `json:"map_url"`
	ImgURL       string `json:"img_url"`
	Location     string `json:"location"`
	HasSockets   bool   `json:"has_sockets"`
	HasToilet    bool   `json:"has_toilet"`
	HasWifi      bool   `json:"has_wifi"`
	CanTakeCalls bool   `json:"can_take_calls"`
	Seats        string `json:"seats"`
	CoffeePrice  string `json:"coffee_price"`
}

// Apply copies every field of in onto c, field for field.
func (c *Cafe) Apply(in CafeInput) {
	c.Name = in.Name
	c.MapURL = in.MapURL
	c.ImgURL = in.ImgURL
	c.Location = in.Location
	c.HasSockets = in.HasSockets
	c.HasToilet = in.HasToilet
	c.HasWifi = in.HasWifi
	c.CanTakeCalls = in.CanTakeCalls
	c.Seats = in.Seats
	c.CoffeePrice = in.CoffeePrice
}

// Input returns the user-settable fields of c.
func (c Cafe) Input() CafeInput {
	return CafeInput{
		Name:         c.Name,
		MapURL:       c.MapURL,
		ImgURL:       c.ImgURL,
		Location:     c.Location,
		HasSockets:   c.HasSockets,
		HasToilet:    c.HasToilet,
		HasWifi:      c.HasWifi,
		CanTakeCalls: c.CanTakeCalls,
		Seats:        c.Seats,
		CoffeePrice:  c.CoffeePrice,
	}
}
