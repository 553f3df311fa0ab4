package models

// Bar - столбец диаграммы
type Bar struct {
	Place     string  `json:"place"`
	DaysSpent int     `json:"days_spent"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
}

// ChartView - данные для столбчатой диаграммы
type ChartView struct {
	Title     string  `json:"title"`
	ScaleMax  int     `json:"scale_max"`
	Height    float64 `json:"height"`
	Bars      []Bar   `json:"bars"`
	TotalDays int     `json:"total_days"`
}

// TableRow - строка таблицы статистики
type TableRow struct {
	Place     string `json:"place"`
	DaysSpent int    `json:"days_spent"`
}

// TableView - табличное представление с итоговой строкой
type TableView struct {
	Rows  []TableRow `json:"rows"`
	Total int        `json:"total"`
}
