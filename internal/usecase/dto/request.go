package dto

// ListVenuesRequest - фильтры и сортировка списка заведений (query-параметры)
type ListVenuesRequest struct {
	Search        string `query:"q" validate:"omitempty,max=200"`
	Tags          string `query:"tags" validate:"omitempty,max=200"`
	Region        string `query:"region" validate:"omitempty,max=64"`
	DataCenter    string `query:"data_center" validate:"omitempty,max=64"`
	World         string `query:"world" validate:"omitempty,max=64"`
	OpenNow       *bool  `query:"open_now"`
	FavoritesOnly bool   `query:"favorites"`
	VisitedOnly   bool   `query:"visited"`
	SFWOnly       bool   `query:"sfw_only"`
	NSFWOnly      bool   `query:"nsfw_only"`
	SizeApartment *bool  `query:"size_apartment"`
	SizeSmall     *bool  `query:"size_small"`
	SizeMedium    *bool  `query:"size_medium"`
	SizeLarge     *bool  `query:"size_large"`
	Sort          string `query:"sort" validate:"omitempty,sortspec"`
}

// OptionsRequest - выбранные регион и дата-центр для списков выбора
type OptionsRequest struct {
	Region     string `query:"region" validate:"omitempty,max=64"`
	DataCenter string `query:"data_center" validate:"omitempty,max=64"`
}

// VisitRequest - запрос на перемещение к заведению
type VisitRequest struct {
	RouteIndex int `json:"route_index" validate:"min=0"`
}
