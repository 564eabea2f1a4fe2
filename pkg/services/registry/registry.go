package registry

import (
	"fmt"
	"sync"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/samber/lo"
)

// Registry holds the descriptive metadata of every report
type Registry interface {
	// Register adds a report definition
	Register(def domain.ReportDefinition) error
	// Get returns the definition of a report. Unknown ids are a validation error.
	Get(id domain.ReportID) (domain.ReportDefinition, error)
	// List returns every definition in display order
	List() []domain.ReportDefinition
}

type registry struct {
	mu          sync.RWMutex
	definitions map[domain.ReportID]domain.ReportDefinition
	order       []domain.ReportID
}

// NewRegistry creates an empty registry
func NewRegistry() Registry {
	return &registry{
		definitions: make(map[domain.ReportID]domain.ReportDefinition),
	}
}

// Default returns a registry holding the storefront reports
func Default() Registry {
	r := NewRegistry()
	for _, def := range Definitions {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

var Definitions = []domain.ReportDefinition{
	{
		ID:          domain.ReportSalesSummary,
		Title:       "Resumen de Ventas",
		Description: "Ingresos, pedidos, productos y clientes principales del periodo",
		Category:    "ventas",
	},
	{
		ID:          domain.ReportCustomerAnalysis,
		Title:       "Análisis de Clientes",
		Description: "Clientes nuevos y recurrentes, distribución geográfica y segmentación por valor",
		Category:    "clientes",
	},
	{
		ID:          domain.ReportProductPerformance,
		Title:       "Rendimiento de Productos",
		Description: "Productos más vendidos, categorías, inventario y rentabilidad estimada",
		Category:    "productos",
	},
	{
		ID:          domain.ReportFinancial,
		Title:       "Reporte Financiero",
		Description: "Ingresos, costos estimados, márgenes, pagos y pérdidas por cancelación",
		Category:    "finanzas",
	},
	{
		ID:          domain.ReportOrdersAnalysis,
		Title:       "Análisis de Pedidos",
		Description: "Estados, tendencia diaria, tiempos de entrega y tamaño de pedidos",
		Category:    "pedidos",
	},
}

func (r *registry) Register(def domain.ReportDefinition) error {
	if !def.ID.Valid() {
		return fmt.Errorf("report id %q is not supported", def.ID)
	}
	if def.Title == "" {
		return fmt.Errorf("report %q has no title", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.ID]; exists {
		return fmt.Errorf("report %q is already registered", def.ID)
	}

	r.definitions[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

func (r *registry) Get(id domain.ReportID) (domain.ReportDefinition, error) {
	r.mu.RLock()
	def, exists := r.definitions[id]
	r.mu.RUnlock()

	if !exists {
		return domain.ReportDefinition{}, ierr.NewErrorf("unknown report id: %q", id).
			WithHintf("use one of: %v", domain.ReportIDs).
			Mark(ierr.ErrValidation)
	}
	return def, nil
}

func (r *registry) List() []domain.ReportDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.order, func(id domain.ReportID, _ int) domain.ReportDefinition {
		return r.definitions[id]
	})
}
