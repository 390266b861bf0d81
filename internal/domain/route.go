package domain

// RouteOption - один вариант адреса заведения: текст для показа, для копирования
// и, если удалось собрать, аргумент для внешней навигации
type RouteOption struct {
	DisplayText    string  `json:"display_text"`
	CopyText       string  `json:"copy_text"`
	NavigationArgs *string `json:"navigation_args,omitempty"`
}

func (r RouteOption) CanNavigate() bool {
	return r.NavigationArgs != nil && *r.NavigationArgs != ""
}
