package dto

import (
	"resto/internal/domains/table/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	TableNumber int    `json:"table_number" validate:"required,min=1"`
	Capacity    int    `json:"capacity"     validate:"required,min=1"`
	Location    string `json:"location"     validate:"omitempty,max=100"`
	Active      *bool  `json:"active"       validate:"omitempty"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Table{
		ID:          uuid.NewString(),
		TableNumber: c.TableNumber,
		Capacity:    c.Capacity,
		Location:    c.Location,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	TableNumber int    `db:"table_number" json:"table_number" validate:"omitempty,min=1"`
	Capacity    int    `db:"capacity"     json:"capacity"     validate:"omitempty,min=1"`
	Location    string `db:"location"     json:"location"     validate:"omitempty,max=100"`
	Active      *bool  `db:"active"       json:"active"       validate:"omitempty"`
}

type TableResponse struct {
	ID          string `json:"id"`
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.TableNumber = model.TableNumber
	r.Capacity = model.Capacity
	r.Location = model.Location
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
