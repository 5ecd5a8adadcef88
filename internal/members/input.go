package members

import (
	"strings"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/models"
)

// Input is the create and update body. Both replace the whole member: absent
// or null birthdate parts are stored as null and absent flags as false. The
// confirmation and domicile enums may be sent instead of, or together with,
// the boolean pairs as long as they agree.
type Input struct {
	Nama     *string `json:"nama"`
	Sektor   *int    `json:"sektor"`
	Kategori *string `json:"kategori"`
	Day      *int    `json:"day"`
	Month    *int    `json:"month"`
	Year     *int    `json:"year"`

	Confirmation *string `json:"confirmation"`
	Confirmed    *bool   `json:"confirmed"`
	NotConfirmed *bool   `json:"notConfirmed"`

	Domicile    *string `json:"domicile"`
	InArea      *bool   `json:"inArea"`
	OutsideArea *bool   `json:"outsideArea"`

	Address *string `json:"address"`
}

// apply copies in onto a zero m and validates the result.
func (in Input) apply(m *models.Member) error {
	if in.Nama != nil {
		m.Nama = strings.TrimSpace(*in.Nama)
	}
	if in.Sektor != nil {
		m.Sektor = *in.Sektor
	}
	if in.Kategori != nil {
		m.Kategori = models.Category(strings.ToUpper(strings.TrimSpace(*in.Kategori)))
	}
	if in.Day != nil {
		m.Day = in.Day
	}
	if in.Month != nil {
		m.Month = in.Month
	}
	if in.Year != nil {
		m.Year = in.Year
	}
	if in.Address != nil {
		m.Address = strings.TrimSpace(*in.Address)
	}

	if err := in.applyConfirmation(m); err != nil {
		return err
	}
	if err := in.applyDomicile(m); err != nil {
		return err
	}
	if !m.OutsideArea {
		m.Address = ""
	}

	return validate(m)
}

func (in Input) applyConfirmation(m *models.Member) error {
	if in.Confirmed != nil || in.NotConfirmed != nil {
		confirmed, notConfirmed := m.Confirmed, m.NotConfirmed
		if in.Confirmed != nil {
			confirmed = *in.Confirmed
			if in.NotConfirmed == nil && confirmed {
				notConfirmed = false
			}
		}
		if in.NotConfirmed != nil {
			notConfirmed = *in.NotConfirmed
			if in.Confirmed == nil && notConfirmed {
				confirmed = false
			}
		}
		if confirmed && notConfirmed {
			return apperr.Validation("confirmed and notConfirmed are mutually exclusive")
		}
		m.Confirmed, m.NotConfirmed = confirmed, notConfirmed
	}

	if in.Confirmation == nil {
		return nil
	}

	var want models.Confirmation
	switch *in.Confirmation {
	case "", "unset":
		want = models.ConfirmationUnset
	case string(models.ConfirmationConfirmed):
		want = models.ConfirmationConfirmed
	case string(models.ConfirmationUnconfirmed):
		want = models.ConfirmationUnconfirmed
	default:
		return apperr.Validation("confirmation must be confirmed or unconfirmed")
	}

	if (in.Confirmed != nil || in.NotConfirmed != nil) && m.Confirmation() != want {
		return apperr.Validation("confirmation conflicts with confirmed/notConfirmed")
	}
	m.Confirmed = want == models.ConfirmationConfirmed
	m.NotConfirmed = want == models.ConfirmationUnconfirmed
	return nil
}

func (in Input) applyDomicile(m *models.Member) error {
	if in.InArea != nil || in.OutsideArea != nil {
		inArea, outside := m.InArea, m.OutsideArea
		if in.InArea != nil {
			inArea = *in.InArea
			if in.OutsideArea == nil && inArea {
				outside = false
			}
		}
		if in.OutsideArea != nil {
			outside = *in.OutsideArea
			if in.InArea == nil && outside {
				inArea = false
			}
		}
		if inArea && outside {
			return apperr.Validation("inArea and outsideArea are mutually exclusive")
		}
		m.InArea, m.OutsideArea = inArea, outside
	}

	if in.Domicile == nil {
		return nil
	}

	var want models.Domicile
	switch *in.Domicile {
	case "", "unset":
		want = models.DomicileUnset
	case string(models.DomicileInArea):
		want = models.DomicileInArea
	case string(models.DomicileOutside):
		want = models.DomicileOutside
	default:
		return apperr.Validation("domicile must be inArea or outsideArea")
	}

	if (in.InArea != nil || in.OutsideArea != nil) && m.Domicile() != want {
		return apperr.Validation("domicile conflicts with inArea/outsideArea")
	}
	m.InArea = want == models.DomicileInArea
	m.OutsideArea = want == models.DomicileOutside
	return nil
}

func validate(m *models.Member) error {
	if m.Nama == "" {
		return apperr.Validation("nama is required")
	}
	if m.Sektor < models.MinSector || m.Sektor > models.MaxSector {
		return apperr.Validation("sektor must be between %d and %d", models.MinSector, models.MaxSector)
	}
	if m.Kategori == "" {
		return apperr.Validation("kategori is required")
	}
	if !m.Kategori.Valid() {
		return apperr.Validation("unknown kategori %q", m.Kategori)
	}
	if m.Day != nil && (*m.Day < 1 || *m.Day > 31) {
		return apperr.Validation("day must be between 1 and 31")
	}
	if m.Month != nil && (*m.Month < 1 || *m.Month > 12) {
		return apperr.Validation("month must be between 1 and 12")
	}
	if m.Year != nil && (*m.Year < 1 || *m.Year > 9999) {
		return apperr.Validation("year must be between 1 and 9999")
	}
	return nil
}
