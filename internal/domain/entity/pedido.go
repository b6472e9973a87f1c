package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida de un pedido.
const (
	PedidoPorRecoger = "por recoger"
	PedidoRecogido   = "recogido"
)

// Pedido es una orden de impresión de Cantidad hojas numeradas de un tipo de
// formato para una empresa. Empresa y Formato son nombres denormalizados
// (comportamiento histórico preservado: renombrar la empresa o el tipo deja
// huérfanos los pedidos antiguos de su registro de configuración).
//
// Las fechas de calendario son cadenas YYYY-MM-DD.
type Pedido struct {
	ID                 string
	Fecha              string
	Formato            string // nombre del tipo de formato
	Empresa            string // nombre de la empresa
	Cantidad           int
	NumeracionInicial  int
	Estado             string // PedidoPorRecoger | PedidoRecogido
	FechaRecojo        string
	Pagado             bool
	FechaPago          string
	Monto              decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NumeracionFinal devuelve el último número del rango del pedido.
func (p *Pedido) NumeracionFinal() int {
	return p.NumeracionInicial + p.Cantidad - 1
}
