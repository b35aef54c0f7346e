package operations

import (
	"github.com/padraicbc/racetracker/models"
	"github.com/padraicbc/racetracker/repository"
)

type Owner struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Jockey struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Age     int    `json:"age"`
	Rating  int    `json:"rating"`
}

type Horse struct {
	ID       int64         `json:"id"`
	Nickname string        `json:"nickname"`
	Gender   models.Gender `json:"gender"`
	Age      int           `json:"age"`
	OwnerID  int64         `json:"owner_id"`
}

type Race struct {
	ID         int64   `json:"id"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Hippodrome string  `json:"hippodrome"`
	Name       *string `json:"name"`
}

type Participation struct {
	ID         int64   `json:"id"`
	RaceID     int64   `json:"race_id"`
	JockeyID   int64   `json:"jockey_id"`
	HorseID    int64   `json:"horse_id"`
	Place      int     `json:"place"`
	TimeResult *string `json:"time_result"`
}

// Participant is one result row of a race.
type Participant struct {
	JockeyName string  `json:"jockey_name"`
	HorseName  string  `json:"horse_name"`
	Place      int     `json:"place"`
	TimeResult *string `json:"time_result"`
}

type RaceWithParticipants struct {
	Race         Race          `json:"race"`
	Participants []Participant `json:"participants"`
}

func ownerFromModel(m *models.Owner) Owner {
	return Owner{ID: m.ID, Name: m.Name, Address: m.Address, Phone: m.Phone}
}

func jockeyFromModel(m *models.Jockey) Jockey {
	return Jockey{ID: m.ID, Name: m.Name, Address: m.Address, Age: m.Age, Rating: m.Rating}
}

func horseFromModel(m *models.Horse) Horse {
	return Horse{ID: m.ID, Nickname: m.Nickname, Gender: m.Gender, Age: m.Age, OwnerID: m.OwnerID}
}

func raceFromModel(m *models.Race) Race {
	return Race{
		ID:         m.ID,
		Date:       dateString(m.Date),
		Time:       clockString(m.Time),
		Hippodrome: m.Hippodrome,
		Name:       copyString(m.Name),
	}
}

func participationFromModel(m *models.Participation) Participation {
	return Participation{
		ID:         m.ID,
		RaceID:     m.RaceID,
		JockeyID:   m.JockeyID,
		HorseID:    m.HorseID,
		Place:      m.Place,
		TimeResult: copyClock(m.TimeResult),
	}
}

func participantFromModel(m *models.Participation) Participant {
	p := Participant{Place: m.Place, TimeResult: copyClock(m.TimeResult)}
	if m.Jockey != nil {
		p.JockeyName = m.Jockey.Name
	}
	if m.Horse != nil {
		p.HorseName = m.Horse.Nickname
	}
	return p
}

func raceWithParticipantsFromModel(m *repository.RaceWithParticipants) RaceWithParticipants {
	out := RaceWithParticipants{
		Race:         raceFromModel(&m.Race),
		Participants: make([]Participant, 0, len(m.Participations)),
	}
	for i := range m.Participations {
		out.Participants = append(out.Participants, participantFromModel(&m.Participations[i]))
	}
	return out
}

func mapSlice[M, D any](items []M, fn func(*M) D) []D {
	out := make([]D, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyClock(s *string) *string {
	if s == nil {
		return nil
	}
	v := clockString(*s)
	return &v
}
