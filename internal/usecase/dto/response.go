package dto

import (
	"time"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/pkg/textnorm"
)

// VenueListItem - строка таблицы заведений
type VenueListItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Size     string `json:"size"`
	Status   string `json:"status"`
	Open     bool   `json:"open"`
	Favorite bool   `json:"favorite"`
	Visited  bool   `json:"visited"`
}

// VenueListResponse - отфильтрованный и отсортированный список
type VenueListResponse struct {
	Venues  []VenueListItem `json:"venues"`
	Total   int             `json:"total"`
	Visible int             `json:"visible"`
	Message string          `json:"message,omitempty"`
}

// ScheduleRowResponse - строка расписания во времени зрителя
type ScheduleRowResponse struct {
	Label    string `json:"label"`
	Start    string `json:"start"`
	End      string `json:"end"`
	IsToday  bool   `json:"is_today"`
	IsActive bool   `json:"is_active"`
}

// DescriptionLine - строка описания, разбитая на текст и ссылки
type DescriptionLine struct {
	Segments []textnorm.Segment `json:"segments"`
}

// VenueDetailResponse - карточка заведения
type VenueDetailResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Routes      []domain.RouteOption  `json:"routes"`
	Warning     string                `json:"warning,omitempty"`
	Description []DescriptionLine     `json:"description"`
	Headline    string                `json:"headline,omitempty"`
	Schedule    []ScheduleRowResponse `json:"schedule"`
	Tags        []string              `json:"tags"`
	Website     *string               `json:"website,omitempty"`
	Discord     *string               `json:"discord,omitempty"`
	Size        string                `json:"size"`
	Favorite    bool                  `json:"favorite"`
	Visited     bool                  `json:"visited"`
	Open        bool                  `json:"open"`
	SFW         bool                  `json:"sfw"`
}

// RoutesResponse - варианты адреса заведения
type RoutesResponse struct {
	Routes              []domain.RouteOption `json:"routes"`
	NavigationAvailable bool                 `json:"navigation_available"`
}

// VisitResponse - отправленный в навигацию вариант адреса
type VisitResponse struct {
	Route domain.RouteOption `json:"route"`
}

// OptionsResponse - значения для списков выбора региона, дата-центра и мира
type OptionsResponse struct {
	Regions     []string `json:"regions"`
	DataCenters []string `json:"data_centers"`
	Worlds      []string `json:"worlds"`
}

// CatalogStateResponse - состояние загрузки каталога
type CatalogStateResponse struct {
	Loaded      bool       `json:"loaded"`
	Loading     bool       `json:"loading"`
	VenueCount  int        `json:"venue_count"`
	Error       string     `json:"error,omitempty"`
	LastRefresh *time.Time `json:"last_refresh,omitempty"`
	UpdatedAgo  string     `json:"updated_ago,omitempty"`
}

// PreferenceResponse - состояние отметок заведения
type PreferenceResponse struct {
	VenueID  string `json:"venue_id"`
	Favorite bool   `json:"favorite"`
	Visited  bool   `json:"visited"`
}

// HealthResponse - ответ health-check
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}
