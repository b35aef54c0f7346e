package models

import "github.com/uptrace/bun"

// Participation records one jockey riding one horse in one race, with the outcome.
// A jockey-horse pair appears at most once per race (race_participants_pair).
type Participation struct {
	bun.BaseModel `bun:"table:race_participants,alias:rp"`

	ID         int64   `bun:"id,pk,autoincrement" json:"id"`
	RaceID     int64   `bun:"race_id,notnull,unique:race_participants_pair" json:"race_id"`
	JockeyID   int64   `bun:"jockey_id,notnull,unique:race_participants_pair" json:"jockey_id"`
	HorseID    int64   `bun:"horse_id,notnull,unique:race_participants_pair" json:"horse_id"`
	Place      int     `bun:"place,notnull" json:"place"`
	TimeResult *string `bun:"time_result,type:time" json:"time_result,omitempty"`

	Race   *Race   `bun:"rel:belongs-to,join:race_id=id" json:"-"`
	Jockey *Jockey `bun:"rel:belongs-to,join:jockey_id=id" json:"-"`
	Horse  *Horse  `bun:"rel:belongs-to,join:horse_id=id" json:"-"`
}
