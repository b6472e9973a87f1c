package entity

import "time"

// Estados de custodia de un formato individual.
const (
	FormatoDisponible = "disponible"
	FormatoAsignado   = "asignado"
	FormatoEntregado  = "entregado"
)

// UbicacionAlmacen es la ubicación física por defecto de un formato recién
// materializado y de los talonarios generados.
const UbicacionAlmacen = "Almacén"

// Formato es una hoja numerada individual perteneciente a un pedido. Su
// Numeracion es única dentro del par (empresa, tipo de formato) del pedido
// dueño; el conjunto de numeraciones del par es exactamente la unión de los
// rangos [inicial, inicial+cantidad-1] de sus pedidos.
type Formato struct {
	ID               string
	Numeracion       int
	PedidoID         string
	Estado           string // FormatoDisponible | FormatoAsignado | FormatoEntregado
	UbicacionActual  string
	UbicacionDestino string
	Destinatario     string
	Observaciones    string
	FechaIngreso     string // YYYY-MM-DD
	FechaSalida      string // YYYY-MM-DD, vacío si no ha salido
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
