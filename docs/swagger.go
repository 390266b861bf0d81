// Package docs Venue Directory API.
//
// Сервис каталога заведений FFXIV: загрузка каталога из удалённого справочника,
// фильтрация и сортировка, адреса и навигация, расписания во времени зрителя,
// баннеры, избранное и посещённые заведения.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- image/png
//	- image/jpeg
//	- image/gif
//	- image/webp
//
// swagger:meta
package docs
