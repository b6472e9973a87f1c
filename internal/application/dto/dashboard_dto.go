package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas globales del tablero.
type DashboardResponse struct {
	TotalPedidos        int             `json:"total_pedidos"`
	PedidosPendientes   int             `json:"pedidos_pendientes"`
	PedidosRecogidos    int             `json:"pedidos_recogidos"`
	MontoTotal          decimal.Decimal `json:"monto_total"`
	MontoPagado         decimal.Decimal `json:"monto_pagado"`
	MontoPendiente      decimal.Decimal `json:"monto_pendiente"`
	FormatosDisponibles int             `json:"formatos_disponibles"`
	FormatosAsignados   int             `json:"formatos_asignados"`
	FormatosEntregados  int             `json:"formatos_entregados"`
}
