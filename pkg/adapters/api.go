package adapters

import (
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/api"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/samber/lo"
)

func MapDomainDefinitionToAPI(def domain.ReportDefinition) api.ReportDefinition {
	return api.ReportDefinition{
		ID:          def.ID.String(),
		Title:       def.Title,
		Description: def.Description,
		Category:    def.Category,
	}
}

func MapDomainRangeToAPI(r domain.DateRange) api.DateRange {
	return api.DateRange{Token: r.Token, Start: r.Start, End: r.End, Label: r.Label}
}

// MapAPIFiltersToDomain drops duplicates; nil means no filtering
func MapAPIFiltersToDomain(f *api.Filters) domain.Filters {
	if f == nil {
		return domain.Filters{}
	}
	return domain.Filters{
		Statuses: lo.Uniq(lo.Map(f.Statuses, func(s string, _ int) domain.OrderStatus {
			return domain.OrderStatus(s)
		})),
		CategoryIDs: lo.Uniq(f.CategoryIDs),
	}
}
