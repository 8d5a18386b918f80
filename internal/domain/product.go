package domain

// Product описывает товар каталога. Идентификатор назначается извне
// (каталог не генерирует ID), остальные поля не валидируются на этом уровне.
type Product struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	PassengerCapacity int    `json:"passenger_capacity"`
	MaximumSpeed      int    `json:"maximum_speed"`
	InStock           int    `json:"in_stock"`
}
