package settings

import "time"

// Settings is the agency profile. Exactly one row exists once configured;
// the single-row guarantee comes from a fixed primary key upsert, not from
// row order.
type Settings struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PutSettingsRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
}
