package models

import "time"

// Servant is an entry of the church servant ("pelayan") directory.
type Servant struct {
	ID          string    `db:"id" json:"id"`
	No          *int      `db:"nomor" json:"no"`
	Gelar       string    `db:"gelar" json:"gelar"`
	Jabatan     string    `db:"jabatan" json:"jabatan"`
	SektorLayan string    `db:"sektor_layan" json:"sektorLayan"`
	NoHP        string    `db:"no_hp" json:"noHp"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// NoSector is stored when a servant serves no particular sector.
const NoSector = "-"
