package models

import "github.com/uptrace/bun"

// Race is a single scheduled race at a hippodrome.
// Date is stored as YYYY-MM-DD and Time as HH:MM:SS.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID         int64   `bun:"id,pk,autoincrement" json:"id"`
	Date       string  `bun:"date,notnull,type:date" json:"date"`
	Time       string  `bun:"time,notnull,type:time" json:"time"`
	Hippodrome string  `bun:"hippodrome,notnull,type:varchar(200)" json:"hippodrome"`
	Name       *string `bun:"name,type:varchar(200)" json:"name,omitempty"`
}
