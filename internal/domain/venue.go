package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Venue - запись каталога как её отдаёт удалённый справочник
type Venue struct {
	ID          string          `json:"id"`
	Name        *string         `json:"name,omitempty"`
	Description []string        `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Location    *Location       `json:"location,omitempty"`
	Resolution  *Resolution     `json:"resolution,omitempty"`
	Schedule    []ScheduleEntry `json:"schedule,omitempty"`
	SFW         bool            `json:"sfw"`
	Website     *string         `json:"website,omitempty"`
	Discord     *string         `json:"discord,omitempty"`
	BannerURI   *string         `json:"bannerUri,omitempty"`
}

// UnmarshalJSON применяет значения по умолчанию: sfw=true при отсутствии поля,
// banner - синоним bannerUri
func (v *Venue) UnmarshalJSON(data []byte) error {
	type plain Venue
	aux := struct {
		*plain
		SFW    *bool   `json:"sfw"`
		Banner *string `json:"banner"`
	}{plain: (*plain)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	v.SFW = true
	if aux.SFW != nil {
		v.SFW = *aux.SFW
	}
	if aux.Banner != nil && strings.TrimSpace(*aux.Banner) != "" {
		v.BannerURI = aux.Banner
	}
	return nil
}

// RawName - исходное имя, пустая строка при отсутствии
func (v *Venue) RawName() string {
	if v.Name == nil {
		return ""
	}
	return *v.Name
}

func (v *Venue) IsApartment() bool {
	return v.Location != nil && v.Location.Apartment > 0
}

// IsNSFW - единственный признак: sfw == false
func (v *Venue) IsNSFW() bool {
	return !v.SFW
}

// HasTag - точное совпадение тега без учёта регистра
func (v *Venue) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// HasTagContaining - вхождение подстроки в любой тег без учёта регистра
func (v *Venue) HasTagContaining(fragment string) bool {
	fragment = strings.ToLower(fragment)
	for _, t := range v.Tags {
		if strings.Contains(strings.ToLower(t), fragment) {
			return true
		}
	}
	return false
}

// IsOpenNow - текущее окно открыто
func (v *Venue) IsOpenNow() bool {
	return v.Resolution != nil && v.Resolution.IsNow
}

type Location struct {
	DataCenter  *string `json:"dataCenter,omitempty"`
	World       *string `json:"world,omitempty"`
	District    *string `json:"district,omitempty"`
	Ward        int     `json:"ward"`
	Plot        int     `json:"plot"`
	Subdivision bool    `json:"subdivision"`
	Apartment   int     `json:"apartment"`
	Room        int     `json:"room"`
	Shard       *string `json:"shard,omitempty"`
	Override    *string `json:"override,omitempty"`
}

func (l *Location) HasOverride() bool {
	return l != nil && l.Override != nil && strings.TrimSpace(*l.Override) != ""
}

// Resolution - текущее или ближайшее окно работы, рассчитанное справочником
type Resolution struct {
	IsNow bool      `json:"isNow"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ScheduleEntry struct {
	Day        Weekday     `json:"day"`
	Start      *TimeOfDay  `json:"start,omitempty"`
	End        *TimeOfDay  `json:"end,omitempty"`
	Interval   *Interval   `json:"interval,omitempty"`
	Resolution *Resolution `json:"resolution,omitempty"`
}

// TimeOfDay - время в исходном часовом поясе записи
type TimeOfDay struct {
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	NextDay  bool   `json:"nextDay"`
	TimeZone string `json:"timeZone"`
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	type plain TimeOfDay
	aux := plain{TimeZone: "UTC"}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = TimeOfDay(aux)
	return nil
}

// Weekday - день недели, 0 = Sunday, как в time.Weekday
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (d Weekday) String() string {
	return time.Weekday(d).String()
}

func (d Weekday) Time() time.Weekday {
	return time.Weekday(d)
}

// UnmarshalJSON принимает как имя дня ("Saturday"), так и номер (6)
func (d *Weekday) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Sunday
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 || n > 6 {
			return fmt.Errorf("day out of range: %d", n)
		}
		*d = Weekday(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("day must be a number or a string: %w", err)
	}
	day, ok := ParseWeekday(s)
	if !ok {
		return fmt.Errorf("unknown day %q", s)
	}
	*d = day
	return nil
}

func (d Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return Weekday(n), true
	}
	for day := Sunday; day <= Saturday; day++ {
		if strings.EqualFold(day.String(), s) {
			return day, true
		}
	}
	return Sunday, false
}

// IntervalKind - распознанный тип периодичности
type IntervalKind int

const (
	IntervalUnknown IntervalKind = iota
	IntervalEveryXWeeks
	IntervalEveryXDays
	IntervalEveryXMonths
	IntervalEveryXHours
	IntervalEveryXMinutes
	IntervalOnce
	IntervalOther
)

var intervalNames = map[string]IntervalKind{
	"EveryXWeeks":   IntervalEveryXWeeks,
	"EveryXDays":    IntervalEveryXDays,
	"EveryXMonths":  IntervalEveryXMonths,
	"EveryXHours":   IntervalEveryXHours,
	"EveryXMinutes": IntervalEveryXMinutes,
	"Once":          IntervalOnce,
}

// Числовая форма intervalType из справочника
var intervalCodes = map[string]IntervalKind{
	"0": IntervalEveryXWeeks,
	"1": IntervalEveryXDays,
}

// Interval - периодичность расписания, разобранная один раз при загрузке.
// Raw хранит исходный текст типа для нераспознанных значений.
type Interval struct {
	Kind     IntervalKind
	Argument int
	Raw      string
}

type intervalWire struct {
	IntervalType     json.RawMessage `json:"intervalType"`
	IntervalArgument json.RawMessage `json:"intervalArgument"`
}

func (i *Interval) UnmarshalJSON(data []byte) error {
	var wire intervalWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*i = Interval{Kind: IntervalUnknown}

	if raw, ok := scalarText(wire.IntervalType); ok {
		i.Raw = raw
		switch {
		case intervalNames[raw] != IntervalUnknown:
			i.Kind = intervalNames[raw]
		case intervalCodes[raw] != IntervalUnknown:
			i.Kind = intervalCodes[raw]
		default:
			i.Kind = IntervalOther
		}
	}

	if raw, ok := scalarText(wire.IntervalArgument); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			i.Argument = n
		}
	}

	return nil
}

func (i Interval) MarshalJSON() ([]byte, error) {
	wire := map[string]interface{}{"intervalArgument": i.Argument}
	switch i.Kind {
	case IntervalUnknown:
		wire["intervalType"] = nil
	case IntervalOther:
		wire["intervalType"] = i.Raw
	default:
		for name, kind := range intervalNames {
			if kind == i.Kind {
				wire["intervalType"] = name
			}
		}
	}
	return json.Marshal(wire)
}

// scalarText возвращает текст JSON-строки или целого числа; null и отсутствие - false
func scalarText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			return strconv.FormatInt(v, 10), true
		}
		return n.String(), true
	}

	return "", false
}

// HasAdultServicesTag - заведение указало услуги для взрослых
func (v *Venue) HasAdultServicesTag() bool {
	return v.HasTagContaining("courtesan")
}
