package dto

import (
	"resto/internal/domains/availability/engine"
	tableModel "resto/internal/domains/table/model"
	tableDto "resto/internal/domains/table/model/dto"
)

type CombinationResponse struct {
	Tables        []tableDto.TableResponse `json:"tables"`
	TotalCapacity int                      `json:"total_capacity"`
	Rule          string                   `json:"rule"`
}

func (r *CombinationResponse) FromCombination(combo engine.Combination) {
	r.Tables = make([]tableDto.TableResponse, len(combo.Tables))
	for i, t := range combo.Tables {
		r.Tables[i].FromModel(t)
	}

	r.TotalCapacity = combo.TotalCapacity
	r.Rule = string(combo.Rule)
}

type SuggestionsResponse struct {
	Guests          int                      `json:"guests"`
	Combinations    []CombinationResponse    `json:"combinations"`
	AvailableTables []tableDto.TableResponse `json:"available_tables"`
}

func (r *SuggestionsResponse) FromCombinations(guests int, combos []engine.Combination, available []tableModel.Table) {
	r.Guests = guests

	r.Combinations = make([]CombinationResponse, len(combos))
	for i, combo := range combos {
		r.Combinations[i].FromCombination(combo)
	}

	r.AvailableTables = make([]tableDto.TableResponse, len(available))
	for i, t := range available {
		r.AvailableTables[i].FromModel(t)
	}
}

type AvailableTablesResponse struct {
	Date   string                   `json:"date"`
	Time   string                   `json:"time"`
	Tables []tableDto.TableResponse `json:"tables"`
}

func (r *AvailableTablesResponse) FromModels(date, time string, tables []tableModel.Table) {
	r.Date = date
	r.Time = time

	r.Tables = make([]tableDto.TableResponse, len(tables))
	for i, t := range tables {
		r.Tables[i].FromModel(t)
	}
}

type SlotResponse struct {
	Time            string `json:"time"`
	Available       bool   `json:"available"`
	TablesAvailable int    `json:"tables_available"`
}

type SlotsResponse struct {
	Date       string         `json:"date"`
	GuestCount int            `json:"guest_count"`
	Slots      []SlotResponse `json:"slots"`
}

type DateResponse struct {
	Date            string `json:"date"`
	DayName         string `json:"day_name"`
	Available       bool   `json:"available"`
	TablesAvailable int    `json:"tables_available"`
}

type DatesResponse struct {
	GuestCount int            `json:"guest_count"`
	Dates      []DateResponse `json:"dates"`
}
