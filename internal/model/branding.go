package model

import (
	"strconv"
	"time"
)

// BrandingSettings is a logical singleton: the currently active primary logo
// override. A nil LogoPath means the built-in default logo is in use.
type BrandingSettings struct {
	ID        string    `db:"id" json:"id"`
	LogoPath  *string   `db:"logo_path" json:"logoPath"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ClientLogo is an entry in the public "trusted by" carousel, distinct from
// the primary brand logo.
type ClientLogo struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	LogoPath     string    `db:"logo_path" json:"logoPath"`
	DisplayOrder *string   `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateClientLogoParams struct {
	Name         string
	LogoPath     string
	DisplayOrder *string
}

// DefaultDisplayOrder is the sort key assigned to logos whose displayOrder is
// absent or not numeric: they list last.
const DefaultDisplayOrder = 999

// MaxNumericDisplayOrder is the largest displayOrder treated as numeric.
// The Postgres ordering applies the same 9-digit bound so both storage
// backends agree on which values fall back to the default.
const MaxNumericDisplayOrder = 999_999_999

// SortKey returns the numeric sort key for ordering logos on the homepage.
// Only unsigned digit strings within range count as numeric; anything else
// falls back to the default.
func (c *ClientLogo) SortKey() int {
	if c.DisplayOrder == nil {
		return DefaultDisplayOrder
	}
	n, err := strconv.ParseUint(*c.DisplayOrder, 10, 64)
	if err != nil || n > MaxNumericDisplayOrder {
		return DefaultDisplayOrder
	}
	return int(n)
}
