package members

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/query"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

// ListQuery is a validated listing request.
type ListQuery struct {
	Filter store.MemberFilter
	Sort   store.MemberSort
	Page   int
	Limit  int
}

// Paging limits applied by ParseListQuery.
type Limits struct {
	Default int
	Max     int
}

// ParseListQuery reads listing parameters from the query string. Empty values
// are treated as absent. The legacy names sektor, kategori, sidi and domisili
// are accepted as aliases. Limits above Max are clamped.
func ParseListQuery(v url.Values, lim Limits) (ListQuery, error) {
	q := ListQuery{Sort: store.DefaultMemberSort, Page: 1, Limit: lim.Default}

	if s := first(v, "page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return ListQuery{}, apperr.Validation("page must be a positive integer")
		}
		q.Page = n
	}

	if s := first(v, "limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return ListQuery{}, apperr.Validation("limit must be a positive integer")
		}
		q.Limit = n
	}
	if lim.Max > 0 && q.Limit > lim.Max {
		q.Limit = lim.Max
	}
	if !(query.Page{Number: q.Page, Limit: q.Limit}).InRange() {
		return ListQuery{}, apperr.Validation("page is out of range")
	}

	q.Filter.Search = first(v, "search")

	if s := first(v, "sector", "sektor"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < models.MinSector || n > models.MaxSector {
			return ListQuery{}, apperr.Validation("sector must be between %d and %d", models.MinSector, models.MaxSector)
		}
		q.Filter.Sector = n
	}

	if s := first(v, "category", "kategori"); s != "" {
		c := models.Category(strings.ToUpper(s))
		if !c.Valid() {
			return ListQuery{}, apperr.Validation("unknown category %q", s)
		}
		q.Filter.Category = c
	}

	conf, err := parseConfirmation(first(v, "confirmation"), first(v, "sidi"))
	if err != nil {
		return ListQuery{}, err
	}
	q.Filter.Confirmation = conf

	dom, err := parseDomicile(first(v, "domicile"), first(v, "domisili"))
	if err != nil {
		return ListQuery{}, err
	}
	q.Filter.Domicile = dom

	if s := first(v, "sort"); s != "" {
		key := store.SortKey(s)
		if !store.ValidSortKey(key) {
			return ListQuery{}, apperr.Validation("unknown sort key %q", s)
		}
		q.Sort.Key = key
		if key != store.SortCreatedAt {
			q.Sort.Desc = false
		}
	}

	switch strings.ToLower(first(v, "order")) {
	case "":
	case "asc":
		q.Sort.Desc = false
	case "desc":
		q.Sort.Desc = true
	default:
		return ListQuery{}, apperr.Validation("order must be asc or desc")
	}

	return q, nil
}

// first returns the first non-empty trimmed value among keys.
func first(v url.Values, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(v.Get(k)); s != "" {
			return s
		}
	}
	return ""
}

func parseConfirmation(value, legacy string) (models.Confirmation, error) {
	switch value {
	case "":
	case string(models.ConfirmationConfirmed):
		return models.ConfirmationConfirmed, nil
	case string(models.ConfirmationUnconfirmed):
		return models.ConfirmationUnconfirmed, nil
	default:
		return "", apperr.Validation("confirmation must be confirmed or unconfirmed")
	}

	switch strings.ToLower(legacy) {
	case "":
		return models.ConfirmationUnset, nil
	case "sudah":
		return models.ConfirmationConfirmed, nil
	case "belum":
		return models.ConfirmationUnconfirmed, nil
	default:
		return "", apperr.Validation("sidi must be sudah or belum")
	}
}

func parseDomicile(value, legacy string) (models.Domicile, error) {
	switch value {
	case "":
	case string(models.DomicileInArea):
		return models.DomicileInArea, nil
	case string(models.DomicileOutside):
		return models.DomicileOutside, nil
	default:
		return "", apperr.Validation("domicile must be inArea or outsideArea")
	}

	switch strings.ToLower(legacy) {
	case "":
		return models.DomicileUnset, nil
	case "kbb":
		return models.DomicileInArea, nil
	case "luar_kbb":
		return models.DomicileOutside, nil
	default:
		return "", apperr.Validation("domisili must be kbb or luar_kbb")
	}
}
