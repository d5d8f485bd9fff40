package entity

import "time"

// Branch is a physical lab branch. Phone is stored in international form.
type Branch struct {
	ObjectID  string    `json:"_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Manager   string    `json:"manager"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
