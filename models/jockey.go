package models

import "github.com/uptrace/bun"

// Jockey rides horses in races.
type Jockey struct {
	bun.BaseModel `bun:"table:jockeys,alias:j"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	Name    string `bun:"name,notnull,type:varchar(200)" json:"name"`
	Address string `bun:"address,notnull,type:varchar(500)" json:"address"`
	Age     int    `bun:"age,notnull" json:"age"`
	Rating  int    `bun:"rating,notnull" json:"rating"`
}
