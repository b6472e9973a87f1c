package entity

import "time"

// Estados de un talonario.
const (
	TalonarioDisponible = "disponible"
	TalonarioEnviado    = "enviado"
)

// Talonario agrupa un rango contiguo de formatos para custodia y despacho
// físico. No referencia IDs de formatos sino el rango de numeración: es una
// vista sobre los formatos del par (empresa, tipo) que se reconcilia contra
// el almacén en cada carga. Un talonario enviado es inmutable en rango; solo
// la cola disponible se vuelve a particionar.
type Talonario struct {
	ID               string
	FormatoTipo      string
	Empresa          string
	NumeracionDesde  int
	NumeracionHasta  int
	Cantidad         int
	FechaIngreso     string // YYYY-MM-DD
	UbicacionAlmacen string
	FechaSalida      string // YYYY-MM-DD, vacío mientras está disponible
	UbicacionDestino string
	Observaciones    string
	Estado           string // TalonarioDisponible | TalonarioEnviado
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Disponible informa si el talonario sigue en almacén.
func (t *Talonario) Disponible() bool { return t.Estado == TalonarioDisponible }
