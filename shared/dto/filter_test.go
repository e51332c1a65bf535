package dto_test

import (
	"resto/shared/dto"
	"strings"
	"testing"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name: "eq operator",
			filter: dto.Filter{
				Field:    "status",
				Value:    "pending",
				Operator: dto.FilterOperatorEq,
			},
			expectedSQL:  "status = :status",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name: "eq operator with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "pending",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			expectedSQL:  "bookings.status = :status",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name: "eq operator with custom arg name",
			filter: dto.Filter{
				ArgName:  "booking_status",
				Field:    "status",
				Value:    "pending",
				Operator: dto.FilterOperatorEq,
			},
			expectedSQL:  "status = :booking_status",
			expectedArgs: map[string]any{"booking_status": "pending"},
		},
		{
			name: "not eq operator",
			filter: dto.Filter{
				Field:    "status",
				Value:    "cancelled",
				Operator: dto.FilterOperatorNotEq,
			},
			expectedSQL:  "status != :status",
			expectedArgs: map[string]any{"status": "cancelled"},
		},
		{
			name: "greater eq operator",
			filter: dto.Filter{
				Field:    "capacity",
				Value:    4,
				Operator: dto.FilterOperatorGreaterEq,
			},
			expectedSQL:  "capacity >= :capacity",
			expectedArgs: map[string]any{"capacity": 4},
		},
		{
			name: "is null operator",
			filter: dto.Filter{
				Field:    "booking_id",
				Operator: dto.FilterIsNull,
				Table:    "orders",
			},
			expectedSQL:  "orders.booking_id IS NULL",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected SQL %q, got %q", tt.expectedSQL, sql)
			}

			if len(args) != len(tt.expectedArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.expectedArgs), len(args))
			}

			for key, expected := range tt.expectedArgs {
				if args[key] != expected {
					t.Errorf("expected arg %s to be %v, got %v", key, expected, args[key])
				}
			}
		})
	}
}

func TestFilter_GetWhereClauseIn(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Value:    []string{"pending", "confirmed"},
		Operator: dto.FilterOperatorIn,
	}

	sql, args := filter.GetWhereClause()

	if !strings.Contains(sql, "status IN (:status_0, :status_1)") {
		t.Errorf("unexpected SQL: %q", sql)
	}

	if args["status_0"] != "pending" || args["status_1"] != "confirmed" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group produces no clause", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

		sql, args := group.GetWhereClause()
		if sql != "" {
			t.Errorf("expected empty SQL, got %q", sql)
		}

		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("and group joins filters", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "booking_date", Value: "2026-09-15", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
			},
		}

		sql, args := group.GetWhereClause()

		if !strings.Contains(sql, " AND ") {
			t.Errorf("expected AND join, got %q", sql)
		}

		if !strings.HasPrefix(sql, "(") || !strings.HasSuffix(sql, ")") {
			t.Errorf("expected parenthesized clause, got %q", sql)
		}

		if args["booking_date"] != "2026-09-15" || args["status"] != "confirmed" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("nested group", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "table_id", Value: "t-1", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{ArgName: "status_pending", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
						dto.Filter{ArgName: "status_confirmed", Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
					},
				},
			},
		}

		sql, args := group.GetWhereClause()

		if !strings.Contains(sql, " OR ") || !strings.Contains(sql, " AND ") {
			t.Errorf("expected nested clause, got %q", sql)
		}

		if len(args) != 3 {
			t.Errorf("expected 3 args, got %v", args)
		}
	})
}
