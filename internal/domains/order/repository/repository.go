package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/order/model"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/logger"
	gRepo "resto/shared/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Order interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	InsertWithItems(ctx context.Context, order model.Order, items []model.OrderItem) error
	ItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]model.OrderItemDetail, error)
	PaidRevenue(ctx context.Context) (decimal.Decimal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Order]
	itemRepo gRepo.Repository[model.OrderItem]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Order {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otel),
		itemRepo:   gRepo.NewRepository[model.OrderItem](model.ItemEntityName, model.ItemTableName, model.FieldItemID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertWithItems writes the order and its items in one transaction.
func (repo *repositoryImpl) InsertWithItems(ctx context.Context, order model.Order, items []model.OrderItem) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.InsertWithItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if err = repo.InsertTx(ctx, tx, order); err != nil {
		return err
	}

	if err = repo.itemRepo.InsertBulkTx(ctx, tx, items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const itemsByOrderIDsQuery = `
	SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price, oi.special_notes,
		m.name, m.description
	FROM order_items oi
	JOIN menu_items m ON oi.menu_item_id = m.id
	WHERE oi.order_id = ANY($1)`

// ItemsByOrderIDs loads the joined items for a batch of orders.
func (repo *repositoryImpl) ItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]model.OrderItemDetail, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.ItemsByOrderIDs")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, itemsByOrderIDsQuery)

	if len(orderIDs) == 0 {
		return map[string][]model.OrderItemDetail{}, nil
	}

	items := []model.OrderItemDetail{}

	err := repo.db.Read.SelectContext(ctx, &items, itemsByOrderIDsQuery, pq.Array(orderIDs))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	byOrder := make(map[string][]model.OrderItemDetail)
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	return byOrder, nil
}

const paidRevenueQuery = `
	SELECT COALESCE(SUM(total_amount), 0) FROM orders
	WHERE payment_status = 'paid'`

// PaidRevenue sums the total amount of every paid order.
func (repo *repositoryImpl) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.PaidRevenue")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, paidRevenueQuery)

	var revenue decimal.Decimal

	err := repo.db.Read.GetContext(ctx, &revenue, paidRevenueQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return decimal.Zero, fmt.Errorf("failed to get paid revenue: %w", err)
	}

	return revenue, nil
}
