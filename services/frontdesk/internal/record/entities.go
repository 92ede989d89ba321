package record

// Mapping tables, one per collection.
var (
	Inventory = NewMapping(CollectionInventory,
		Field{Name: "name", Backend: "Name"},
		Field{Name: "quantity"},
		Field{Name: "unit"},
		Field{Name: "lowStockThreshold", Backend: "low_stock_threshold"},
		Field{Name: "lastUpdated", Backend: "last_updated"},
	)

	MenuItem = NewMapping(CollectionMenuItem,
		Field{Name: "name", Backend: "Name"},
		Field{Name: "description"},
		Field{Name: "category"},
		Field{Name: "price"},
		Field{Name: "available"},
	)

	Order = NewMapping(CollectionOrder,
		Field{Name: "orderNumber", Backend: "order_number"},
		Field{Name: "tableNumber", Backend: "table_number"},
		Field{Name: "items"},
		Field{Name: "status"},
		Field{Name: "totalAmount", Backend: "total_amount"},
		Field{Name: "completedAt", Backend: "completed_at"},
	)

	Reservation = NewMapping(CollectionReservation,
		Field{Name: "customerName", Backend: "customer_name"},
		Field{Name: "phone"},
		Field{Name: "dateTime", Backend: "date_time"},
		Field{Name: "partySize", Backend: "party_size"},
		Field{Name: "notes"},
	)
)
