package model

import "time"

// Guest represents a hotel guest profile as stored in the `guests`
// table. The guest's credentials live with the external identity
// provider; only the provider's subject id is recorded here so that
// incoming tokens can be matched to a profile. Profile fields are
// mutable, the external link is not.
//
// Fields:
//  ID         – primary key identifier.
//  ExternalID – subject id issued by the identity provider (immutable).
//  FullName   – display name.
//  Email      – contact email address.
//  Phone      – optional contact phone.
//  Address    – optional postal address.
//  CreatedAt  – timestamp of first registration.
//  UpdatedAt  – timestamp of last profile edit.
type Guest struct {
	ID         uint64    `json:"id"`          // guests.id
	ExternalID string    `json:"external_id"` // guests.external_id
	FullName   string    `json:"full_name"`   // guests.full_name
	Email      string    `json:"email"`       // guests.email
	Phone      string    `json:"phone"`       // guests.phone
	Address    string    `json:"address"`     // guests.address
	CreatedAt  time.Time `json:"created_at"`  // guests.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // guests.updated_at
}
