package usecase

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/pkg/textnorm"
	"github.com/venue-directory/internal/usecase/dto"
)

const unnamedVenue = "Unnamed venue"

const (
	warningNSFWAndAdult = "This venue has indicated they are openly NSFW and offer adult services. You must not visit this venue if you are under 18 years of age or the legal age of consent in your country, and by visiting you declare you are not. Be prepared to verify your age."
	warningAdult        = "This venue has indicated they offer adult services. You must not partake in these services if you are under 18 years of age or the legal age of consent in your country, and by partaking in these services you declare you are not. Be prepared to verify your age."
	warningNSFW         = "This venue has indicated they are openly NSFW. You must not visit this venue if you are under 18 years of age or the legal age of consent in your country, and by visiting you declare you are not. Be prepared to verify your age."
)

// CatalogReader - доступ к загруженному набору заведений
type CatalogReader interface {
	VenueLookup
	Venues() ([]domain.Venue, error)
}

// SizeLabeler - метка размера для показа
type SizeLabeler interface {
	SizeLabel(venue *domain.Venue) string
}

// VenueUseCase - готовые к показу представления каталога
type VenueUseCase struct {
	catalog   CatalogReader
	filter    *FilterUseCase
	sizes     SizeLabeler
	schedules *ScheduleResolver
	prefs     *PreferenceUseCase
	logger    *zap.Logger
}

// NewVenueUseCase создает новый VenueUseCase
func NewVenueUseCase(
	catalog CatalogReader,
	filter *FilterUseCase,
	sizes SizeLabeler,
	schedules *ScheduleResolver,
	prefs *PreferenceUseCase,
	logger *zap.Logger,
) *VenueUseCase {
	return &VenueUseCase{
		catalog:   catalog,
		filter:    filter,
		sizes:     sizes,
		schedules: schedules,
		prefs:     prefs,
		logger:    logger,
	}
}

// CriteriaFromRequest - перевод query-параметров в условия фильтра и сортировки.
// Отсутствующие open_now и size_* считаются включёнными.
func CriteriaFromRequest(req dto.ListVenuesRequest) (Criteria, []SortKey, error) {
	c := DefaultCriteria()
	c.Search = req.Search
	c.Tags = req.Tags
	c.Region = req.Region
	c.DataCenter = req.DataCenter
	c.World = req.World
	c.FavoritesOnly = req.FavoritesOnly
	c.VisitedOnly = req.VisitedOnly
	if req.OpenNow != nil {
		c.OpenNow = *req.OpenNow
	}

	c.SetSFWOnly(req.SFWOnly)
	if req.NSFWOnly && !req.SFWOnly {
		c.SetNSFWOnly(true)
	}

	toggles := []*bool{req.SizeApartment, req.SizeSmall, req.SizeMedium, req.SizeLarge}
	for i, toggle := range toggles {
		if toggle != nil && !*toggle {
			c.Sizes.set(SizeKind(i), false)
		}
	}
	if c.Sizes.None() {
		c.Sizes = AllSizes()
	}

	keys, err := ParseSortSpec(req.Sort)
	if err != nil {
		return c, nil, err
	}
	return c, keys, nil
}

// List - отфильтрованный и отсортированный список заведений
func (uc *VenueUseCase) List(req dto.ListVenuesRequest) (*dto.VenueListResponse, error) {
	criteria, keys, err := CriteriaFromRequest(req)
	if err != nil {
		return nil, err
	}

	venues, err := uc.catalog.Venues()
	if err != nil {
		return nil, err
	}

	prefs := uc.prefs.Snapshot()
	visible := uc.filter.Sort(uc.filter.Filter(venues, criteria, prefs), keys)

	items := make([]dto.VenueListItem, 0, len(visible))
	for i := range visible {
		v := &visible[i]
		items = append(items, dto.VenueListItem{
			ID:       v.ID,
			Name:     DisplayName(v),
			Address:  FormatAddressForTable(v),
			Size:     uc.sizes.SizeLabel(v),
			Status:   uc.schedules.StatusLine(v),
			Open:     v.IsOpenNow(),
			Favorite: prefs.Contains(domain.ListFavorites, v.ID),
			Visited:  prefs.Contains(domain.ListVisited, v.ID),
		})
	}

	resp := &dto.VenueListResponse{
		Venues:  items,
		Total:   len(venues),
		Visible: len(items),
	}
	if len(items) == 0 {
		resp.Message = EmptySelectionMessage(criteria)
	}
	return resp, nil
}

// Detail - карточка заведения
func (uc *VenueUseCase) Detail(venueID string) (*dto.VenueDetailResponse, error) {
	v, err := uc.catalog.Venue(venueID)
	if err != nil {
		return nil, err
	}

	today := uc.schedules.Today()
	rows := uc.schedules.ScheduleRows(v, today)
	schedule := make([]dto.ScheduleRowResponse, 0, len(rows))
	for _, row := range rows {
		schedule = append(schedule, dto.ScheduleRowResponse{
			Label:    row.Label,
			Start:    row.StartText,
			End:      row.EndText,
			IsToday:  row.IsToday,
			IsActive: row.IsActiveNow,
		})
	}

	return &dto.VenueDetailResponse{
		ID:          v.ID,
		Name:        DisplayName(v),
		Routes:      ResolveRoutes(v),
		Warning:     WarningText(v),
		Description: DescriptionLines(v.Description),
		Headline:    uc.schedules.ResolutionHeadline(v.Resolution),
		Schedule:    schedule,
		Tags:        displayTags(v.Tags),
		Website:     nonEmpty(v.Website),
		Discord:     nonEmpty(v.Discord),
		Size:        uc.sizes.SizeLabel(v),
		Favorite:    uc.prefs.IsFavorite(v.ID),
		Visited:     uc.prefs.IsVisited(v.ID),
		Open:        v.IsOpenNow(),
		SFW:         v.SFW,
	}, nil
}

// Routes - варианты адреса заведения
func (uc *VenueUseCase) Routes(venueID string) ([]domain.RouteOption, error) {
	v, err := uc.catalog.Venue(venueID)
	if err != nil {
		return nil, err
	}
	return ResolveRoutes(v), nil
}

// Options - регионы, дата-центры и миры для списков выбора
func (uc *VenueUseCase) Options(req dto.OptionsRequest) (*dto.OptionsResponse, error) {
	venues, err := uc.catalog.Venues()
	if err != nil {
		return nil, err
	}
	return &dto.OptionsResponse{
		Regions:     append([]string{AnyOption}, domain.Regions...),
		DataCenters: append([]string{AnyOption}, RegionDataCenters(DataCenters(venues), req.Region)...),
		Worlds:      append([]string{AnyOption}, Worlds(venues, req.Region, req.DataCenter)...),
	}, nil
}

// DescribeCatalogState - состояние каталога для ответа API
func DescribeCatalogState(state CatalogState, now time.Time) dto.CatalogStateResponse {
	resp := dto.CatalogStateResponse{
		Loaded:     state.Loaded,
		Loading:    state.Loading,
		VenueCount: len(state.Venues),
	}
	if state.LoadError != nil {
		resp.Error = state.LoadError.Error()
	}
	if !state.LastRefresh.IsZero() {
		last := state.LastRefresh
		resp.LastRefresh = &last
		resp.UpdatedAgo = RelativeTime(last, now)
	}
	return resp
}

// DisplayName - нормализованное имя или "Unnamed venue"
func DisplayName(v *domain.Venue) string {
	if strings.TrimSpace(v.RawName()) == "" {
		return unnamedVenue
	}
	if name := textnorm.NormalizeDisplay(v.RawName()); name != "" {
		return name
	}
	return unnamedVenue
}

// WarningText - предупреждение о контенте 18+; пустая строка, если не нужно
func WarningText(v *domain.Venue) string {
	nsfw := v.IsNSFW()
	adult := v.HasAdultServicesTag()
	switch {
	case nsfw && adult:
		return warningNSFWAndAdult
	case adult:
		return warningAdult
	case nsfw:
		return warningNSFW
	}
	return ""
}

// DescriptionLines - очищенное описание построчно; пустая строка разделяет абзацы
func DescriptionLines(paragraphs []string) []dto.DescriptionLine {
	text := textnorm.SanitizeDescription(paragraphs)
	if text == "" {
		return []dto.DescriptionLine{}
	}

	lines := strings.Split(text, "\n")
	out := make([]dto.DescriptionLine, 0, len(lines))
	for _, line := range lines {
		segments := textnorm.SplitLinks(line)
		if segments == nil {
			segments = []textnorm.Segment{}
		}
		out = append(out, dto.DescriptionLine{Segments: segments})
	}
	return out
}

func displayTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

var _ CatalogReader = (*CatalogUseCase)(nil)

var _ SizeLabeler = (*PlotSizeIndex)(nil)
