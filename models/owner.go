package models

import "github.com/uptrace/bun"

// Owner is the registered owner of one or more horses.
type Owner struct {
	bun.BaseModel `bun:"table:owners,alias:o"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	Name    string `bun:"name,notnull,type:varchar(200)" json:"name"`
	Address string `bun:"address,notnull,type:varchar(500)" json:"address"`
	Phone   string `bun:"phone,notnull,type:varchar(20)" json:"phone"`
}
