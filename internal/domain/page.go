package domain

// EnrichedDetail — позиция заказа, дополненная актуальными данными товара и
// производной ссылкой на изображение. Строится заново при каждом чтении и
// никогда не кэшируется.
type EnrichedDetail struct {
	OrderDetail
	Product Product `json:"product"`
	Image   string  `json:"image"`
}

// EnrichedOrder — клиентское представление заказа с обогащёнными позициями.
type EnrichedOrder struct {
	ID      int64            `json:"id"`
	Details []EnrichedDetail `json:"order_details"`
}

// Page — страница заказов с метаданными пагинации.
type Page struct {
	Data       []EnrichedOrder `json:"data"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	HasNext    bool            `json:"has_next"`
}

// NewPage вычисляет метаданные пагинации: total_pages = ceil(total/limit),
// has_next = page < total_pages. Пустая страница сериализуется как [], не null.
func NewPage(data []EnrichedOrder, page, limit, total int) Page {
	if data == nil {
		data = []EnrichedOrder{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Page{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
