package postgres

import (
	"fmt"
	"strings"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

// scope accumulates positional arguments while a query is assembled
type scope struct {
	args []interface{}
}

func (s *scope) arg(v interface{}) string {
	s.args = append(s.args, v)
	return fmt.Sprintf("$%d", len(s.args))
}

// orders filters the orders aliased o to the window and the query filters
func (s *scope) orders(q sales.Query) string {
	conds := []string{
		fmt.Sprintf("o.created_at BETWEEN %s AND %s", s.arg(q.Start), s.arg(q.End)),
	}
	if len(q.Filters.Statuses) > 0 {
		statuses := lo.Map(q.Filters.Statuses, func(st domain.OrderStatus, _ int) string { return string(st) })
		conds = append(conds, fmt.Sprintf("o.status = ANY(%s)", s.arg(pq.Array(statuses))))
	}
	if len(q.Filters.CategoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM order_items fi
			JOIN products fp ON fp.id = fi.product_id
			WHERE fi.order_id = o.id AND fp.category_id = ANY(%s)
		)`, s.arg(pq.Array(q.Filters.CategoryIDs))))
	}
	return strings.Join(conds, " AND ")
}

// lines narrows line items, joined through products aliased p, to the category filter
func (s *scope) lines(q sales.Query) string {
	if len(q.Filters.CategoryIDs) == 0 {
		return ""
	}
	return fmt.Sprintf(" AND p.category_id = ANY(%s)", s.arg(pq.Array(q.Filters.CategoryIDs)))
}
