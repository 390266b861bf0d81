package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/pkg/errors"
	"github.com/venue-directory/internal/pkg/textnorm"
)

// AnyOption - значение фильтра региона/дата-центра/мира "без ограничения"
const AnyOption = "Any"

// PlotSizer - источник размеров участков для фильтра и сортировки
type PlotSizer interface {
	TryGetSize(location *domain.Location) (domain.PlotSize, bool)
}

// SizeKind - переключатель фильтра по размеру
type SizeKind int

const (
	SizeApartment SizeKind = iota
	SizeSmall
	SizeMedium
	SizeLarge
)

// SizeToggles - включённые размеры; хотя бы один всегда включён
type SizeToggles struct {
	Apartment bool `json:"apartment"`
	Small     bool `json:"small"`
	Medium    bool `json:"medium"`
	Large     bool `json:"large"`
}

// AllSizes - все размеры включены, фильтр по размеру не действует
func AllSizes() SizeToggles {
	return SizeToggles{Apartment: true, Small: true, Medium: true, Large: true}
}

// Set меняет переключатель; выключение последнего включённого отменяется
func (s *SizeToggles) Set(kind SizeKind, enabled bool) {
	s.set(kind, enabled)
	if s.None() {
		s.set(kind, true)
	}
}

// None - все переключатели выключены
func (s SizeToggles) None() bool {
	return !s.Apartment && !s.Small && !s.Medium && !s.Large
}

func (s *SizeToggles) set(kind SizeKind, enabled bool) {
	switch kind {
	case SizeApartment:
		s.Apartment = enabled
	case SizeSmall:
		s.Small = enabled
	case SizeMedium:
		s.Medium = enabled
	case SizeLarge:
		s.Large = enabled
	}
}

// Active - фильтр по размеру действует, если выключен хотя бы один переключатель
func (s SizeToggles) Active() bool {
	return !(s.Apartment && s.Small && s.Medium && s.Large)
}

func (s SizeToggles) allows(size domain.PlotSize) bool {
	switch size {
	case domain.PlotSmall:
		return s.Small
	case domain.PlotMedium:
		return s.Medium
	case domain.PlotLarge:
		return s.Large
	}
	return false
}

// Criteria - условия фильтрации списка заведений
type Criteria struct {
	Search        string
	Tags          string
	Region        string
	DataCenter    string
	World         string
	OpenNow       bool
	FavoritesOnly bool
	VisitedOnly   bool
	SFWOnly       bool
	NSFWOnly      bool
	Sizes         SizeToggles
}

// DefaultCriteria - начальное состояние фильтров: только открытые, все размеры
func DefaultCriteria() Criteria {
	return Criteria{OpenNow: true, Sizes: AllSizes()}
}

// SetSFWOnly включает "только SFW" и выключает противоположный флаг
func (c *Criteria) SetSFWOnly(enabled bool) {
	c.SFWOnly = enabled
	if enabled {
		c.NSFWOnly = false
	}
}

// SetNSFWOnly включает "только NSFW" и выключает противоположный флаг
func (c *Criteria) SetNSFWOnly(enabled bool) {
	c.NSFWOnly = enabled
	if enabled {
		c.SFWOnly = false
	}
}

// FilterUseCase - фильтрация и сортировка каталога
type FilterUseCase struct {
	sizes PlotSizer
}

// NewFilterUseCase - создание нового FilterUseCase
func NewFilterUseCase(sizes PlotSizer) *FilterUseCase {
	return &FilterUseCase{sizes: sizes}
}

// Filter оставляет заведения, прошедшие все условия, в исходном порядке
func (uc *FilterUseCase) Filter(venues []domain.Venue, c Criteria, prefs domain.Preferences) []domain.Venue {
	search := ""
	if strings.TrimSpace(c.Search) != "" {
		search = textnorm.NormalizeForSearch(strings.TrimSpace(c.Search))
	}
	tags := splitTags(c.Tags)

	out := make([]domain.Venue, 0, len(venues))
	for i := range venues {
		v := &venues[i]
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		if len(tags) > 0 && !hasAllTags(v, tags) {
			continue
		}
		if !matchesPlace(v, c.Region, c.DataCenter, c.World) {
			continue
		}
		if c.OpenNow && !v.IsOpenNow() {
			continue
		}
		if c.FavoritesOnly && !prefs.Contains(domain.ListFavorites, v.ID) {
			continue
		}
		if c.VisitedOnly && !prefs.Contains(domain.ListVisited, v.ID) {
			continue
		}
		if c.SFWOnly {
			if v.IsNSFW() {
				continue
			}
		} else if c.NSFWOnly && !v.IsNSFW() {
			continue
		}
		if c.Sizes.Active() && !uc.matchesSize(v, c.Sizes) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

func matchesSearch(v *domain.Venue, search string) bool {
	if textnorm.ContainsFold(v.RawName(), search) {
		return true
	}
	for _, d := range v.Description {
		if textnorm.ContainsFold(d, search) {
			return true
		}
	}
	for _, t := range v.Tags {
		if textnorm.ContainsFold(t, search) {
			return true
		}
	}
	return false
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func hasAllTags(v *domain.Venue, tags []string) bool {
	for _, tag := range tags {
		if !v.HasTag(tag) {
			return false
		}
	}
	return true
}

func selected(option string) bool {
	return option != "" && !strings.EqualFold(option, AnyOption)
}

func matchesPlace(v *domain.Venue, region, dataCenter, world string) bool {
	var venueDC, venueWorld string
	if v.Location != nil {
		venueDC, venueWorld = deref(v.Location.DataCenter), deref(v.Location.World)
	}

	if selected(region) {
		r, ok := domain.ResolveRegion(venueDC)
		if !ok || !strings.EqualFold(r, region) {
			return false
		}
	}
	if selected(dataCenter) && !strings.EqualFold(venueDC, dataCenter) {
		return false
	}
	if selected(world) && !strings.EqualFold(venueWorld, world) {
		return false
	}
	return true
}

func (uc *FilterUseCase) matchesSize(v *domain.Venue, toggles SizeToggles) bool {
	if v.IsApartment() {
		return toggles.Apartment
	}
	size, ok := uc.sizes.TryGetSize(v.Location)
	return ok && toggles.allows(size)
}

// SortColumn - колонка сортировки
type SortColumn string

const (
	SortByName     SortColumn = "name"
	SortByLocation SortColumn = "location"
	SortBySize     SortColumn = "size"
	SortByStatus   SortColumn = "status"
)

// SortKey - одна колонка многоключевой сортировки
type SortKey struct {
	Column     SortColumn
	Descending bool
}

// ParseSortSpec разбирает "name:asc,status:desc"; направление по умолчанию - asc
func ParseSortSpec(spec string) ([]SortKey, error) {
	var keys []SortKey
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		column, direction, _ := strings.Cut(part, ":")
		key := SortKey{Column: SortColumn(strings.ToLower(strings.TrimSpace(column)))}
		switch key.Column {
		case SortByName, SortByLocation, SortBySize, SortByStatus:
		default:
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"sort": fmt.Sprintf("unknown column %q", column),
			})
		}

		switch strings.ToLower(strings.TrimSpace(direction)) {
		case "", "asc":
		case "desc":
			key.Descending = true
		default:
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"sort": fmt.Sprintf("unknown direction %q", direction),
			})
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Sort - устойчивая сортировка по ключам в заданном порядке; без ключей - по имени
func (uc *FilterUseCase) Sort(venues []domain.Venue, keys []SortKey) []domain.Venue {
	out := append([]domain.Venue(nil), venues...)
	if len(keys) == 0 {
		keys = []SortKey{{Column: SortByName}}
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			c := uc.compare(&out[i], &out[j], k.Column)
			if c == 0 {
				continue
			}
			if k.Descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

func (uc *FilterUseCase) compare(a, b *domain.Venue, column SortColumn) int {
	switch column {
	case SortByLocation:
		return strings.Compare(strings.ToLower(locationKey(a)), strings.ToLower(locationKey(b)))
	case SortBySize:
		return sizeRank(uc.sizes, a) - sizeRank(uc.sizes, b)
	case SortByStatus:
		return statusKey(a).Compare(statusKey(b))
	}
	return strings.Compare(strings.ToLower(a.RawName()), strings.ToLower(b.RawName()))
}

func locationKey(v *domain.Venue) string {
	l := v.Location
	if l == nil {
		return "----"
	}
	return fmt.Sprintf("%s-%s-%s-%d-%d", deref(l.DataCenter), deref(l.World), deref(l.District), l.Ward, l.Plot)
}

var maxStatusKey = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// statusKey - открытые сортируются по времени закрытия, остальные по открытию,
// без Resolution - в конец
func statusKey(v *domain.Venue) time.Time {
	if v.Resolution == nil {
		return maxStatusKey
	}
	if v.Resolution.IsNow {
		return v.Resolution.End
	}
	return v.Resolution.Start
}

func sizeRank(sizes PlotSizer, v *domain.Venue) int {
	if v.IsApartment() {
		return 0
	}
	if size, ok := sizes.TryGetSize(v.Location); ok {
		return int(size) + 1
	}
	return 4
}

// DataCenters - различные дата-центры каталога без учёта регистра, по алфавиту
func DataCenters(venues []domain.Venue) []string {
	return distinctSorted(venues, func(v *domain.Venue) string {
		if v.Location == nil {
			return ""
		}
		return deref(v.Location.DataCenter)
	})
}

// RegionDataCenters - дата-центры из списка, относящиеся к региону
func RegionDataCenters(dataCenters []string, region string) []string {
	if !selected(region) {
		return dataCenters
	}
	var out []string
	for _, dc := range dataCenters {
		if r, ok := domain.ResolveRegion(dc); ok && strings.EqualFold(r, region) {
			out = append(out, dc)
		}
	}
	sortFold(out)
	return out
}

// Worlds - миры заведений выбранного региона и дата-центра
func Worlds(venues []domain.Venue, region, dataCenter string) []string {
	scoped := make([]domain.Venue, 0, len(venues))
	for i := range venues {
		if matchesPlace(&venues[i], region, dataCenter, "") {
			scoped = append(scoped, venues[i])
		}
	}
	return distinctSorted(scoped, func(v *domain.Venue) string {
		if v.Location == nil {
			return ""
		}
		return deref(v.Location.World)
	})
}

// EmptySelectionMessage - подсказка, когда не выбрано ни одного заведения
func EmptySelectionMessage(c Criteria) string {
	switch {
	case c.FavoritesOnly && c.VisitedOnly:
		return "You have no favorite or visited venues yet. Add or mark some first."
	case c.FavoritesOnly:
		return "You have no favorite venues yet. Add some first."
	case c.VisitedOnly:
		return "You have no visited venues yet. Mark some first."
	}
	return "Select a venue from the list to see its details."
}

func distinctSorted(venues []domain.Venue, field func(*domain.Venue) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range venues {
		value := field(&venues[i])
		if strings.TrimSpace(value) == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}
	sortFold(out)
	return out
}

func sortFold(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
}
