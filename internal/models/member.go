package models

import (
	"time"
)

type Category string

const (
	CategoryKAKR    Category = "KAKR"
	CategoryPermata Category = "PERMATA"
	CategoryMamre   Category = "MAMRE"
	CategoryMoria   Category = "MORIA"
	CategorySaitun  Category = "SAITUN"
)

// Categories lists the fixed member categories in display order.
var Categories = []Category{CategoryKAKR, CategoryPermata, CategoryMamre, CategoryMoria, CategorySaitun}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

const (
	MinSector = 1
	MaxSector = 7
)

// Confirmation is the tri-state view over the confirmed/notConfirmed pair.
type Confirmation string

const (
	ConfirmationUnset       Confirmation = ""
	ConfirmationConfirmed   Confirmation = "confirmed"
	ConfirmationUnconfirmed Confirmation = "unconfirmed"
)

// Domicile is the tri-state view over the inArea/outsideArea pair.
type Domicile string

const (
	DomicileUnset   Domicile = ""
	DomicileInArea  Domicile = "inArea"
	DomicileOutside Domicile = "outsideArea"
)

// Member is a congregation member row.
type Member struct {
	ID           string    `db:"id" json:"id"`
	Nama         string    `db:"nama" json:"nama"`
	Sektor       int       `db:"sektor" json:"sektor"`
	Kategori     Category  `db:"kategori" json:"kategori"`
	Day          *int      `db:"birth_day" json:"day"`
	Month        *int      `db:"birth_month" json:"month"`
	Year         *int      `db:"birth_year" json:"year"`
	Confirmed    bool      `db:"confirmed" json:"confirmed"`
	NotConfirmed bool      `db:"not_confirmed" json:"notConfirmed"`
	InArea       bool      `db:"in_area" json:"inArea"`
	OutsideArea  bool      `db:"outside_area" json:"outsideArea"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

func (m *Member) Confirmation() Confirmation {
	switch {
	case m.Confirmed:
		return ConfirmationConfirmed
	case m.NotConfirmed:
		return ConfirmationUnconfirmed
	default:
		return ConfirmationUnset
	}
}

func (m *Member) Domicile() Domicile {
	switch {
	case m.InArea:
		return DomicileInArea
	case m.OutsideArea:
		return DomicileOutside
	default:
		return DomicileUnset
	}
}

// HasFullBirthdate reports whether day, month and year are all known.
func (m *Member) HasFullBirthdate() bool {
	return m.Day != nil && m.Month != nil && m.Year != nil
}
