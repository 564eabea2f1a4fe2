package domain

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every order status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Pendiente",
	OrderStatusProcessing: "Procesando",
	OrderStatusShipped:    "Enviado",
	OrderStatusDelivered:  "Entregado",
	OrderStatusCancelled:  "Cancelado",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label is the display string used by the preview and every export format
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending:  "Pendiente",
	PaymentStatusPaid:     "Pagado",
	PaymentStatusFailed:   "Fallido",
	PaymentStatusRefunded: "Reembolsado",
}

func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}
