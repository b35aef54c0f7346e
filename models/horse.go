package models

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// ErrInvalidGender is returned when a horse row carries a gender outside the known set.
var ErrInvalidGender = errors.New("invalid horse gender")

// Gender of a horse.
type Gender string

const (
	Stallion Gender = "stallion"
	Mare     Gender = "mare"
	Gelding  Gender = "gelding"
)

// Genders lists every accepted gender in display order.
var Genders = []Gender{Stallion, Mare, Gelding}

// ParseGender accepts a gender name in any case.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
	return g, nil
}

func (g Gender) Valid() bool {
	switch g {
	case Stallion, Mare, Gelding:
		return true
	}
	return false
}

func (g Gender) String() string { return string(g) }

// Value implements driver.Valuer.
func (g Gender) Value() (driver.Value, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGender, string(g))
	}
	return string(g), nil
}

// Scan implements sql.Scanner.
func (g *Gender) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidGender, src)
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Horse is a racehorse. Every horse has exactly one owner.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Nickname string `bun:"nickname,notnull,type:varchar(100)" json:"nickname"`
	Gender   Gender `bun:"gender,notnull,type:varchar(16)" json:"gender"`
	Age      int    `bun:"age,notnull" json:"age"`
	OwnerID  int64  `bun:"owner_id,notnull" json:"owner_id"`

	Owner *Owner `bun:"rel:belongs-to,join:owner_id=id" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Horse)(nil)

// BeforeAppendModel keeps unknown genders out of the horses table.
func (h *Horse) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		if !h.Gender.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidGender, string(h.Gender))
		}
	}
	return nil
}
