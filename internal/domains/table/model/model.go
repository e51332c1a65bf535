package model

import "resto/shared/model"

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID          = "id"
	FieldTableNumber = "table_number"
	FieldCapacity    = "capacity"
	FieldLocation    = "location"
	FieldActive      = "active"
)

type Table struct {
	ID          string `db:"id"`
	TableNumber int    `db:"table_number"`
	Capacity    int    `db:"capacity"`
	Location    string `db:"location"`
	Active      bool   `db:"active"`
	model.Metadata
}
