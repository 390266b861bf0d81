package domain

// Preferences - сохранённые пользователем списки заведений
type Preferences struct {
	Version          int      `json:"version" yaml:"version"`
	FavoriteVenueIDs []string `json:"favorite_venue_ids" yaml:"favoriteVenueIds"`
	VisitedVenueIDs  []string `json:"visited_venue_ids" yaml:"visitedVenueIds"`
}

// PreferenceList - какой из списков меняется
type PreferenceList string

const (
	ListFavorites PreferenceList = "favorites"
	ListVisited   PreferenceList = "visited"
)

func (p *Preferences) Contains(list PreferenceList, venueID string) bool {
	for _, id := range p.ids(list) {
		if id == venueID {
			return true
		}
	}
	return false
}

// Set добавляет или убирает id; true, если список изменился
func (p *Preferences) Set(list PreferenceList, venueID string, enabled bool) bool {
	ids := p.ids(list)
	index := -1
	for i, id := range ids {
		if id == venueID {
			index = i
			break
		}
	}

	switch {
	case enabled && index < 0:
		ids = append(ids, venueID)
	case !enabled && index >= 0:
		ids = append(ids[:index:index], ids[index+1:]...)
	default:
		return false
	}

	if list == ListFavorites {
		p.FavoriteVenueIDs = ids
	} else {
		p.VisitedVenueIDs = ids
	}
	return true
}

// Clone - независимая копия для передачи за пределы блокировки
func (p Preferences) Clone() Preferences {
	return Preferences{
		Version:          p.Version,
		FavoriteVenueIDs: append([]string(nil), p.FavoriteVenueIDs...),
		VisitedVenueIDs:  append([]string(nil), p.VisitedVenueIDs...),
	}
}

func (p *Preferences) ids(list PreferenceList) []string {
	if list == ListFavorites {
		return p.FavoriteVenueIDs
	}
	return p.VisitedVenueIDs
}
