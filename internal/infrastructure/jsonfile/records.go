package jsonfile

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// Los registros replican el esquema snake_case de los archivos históricos.
// Los montos se serializan como número JSON, no como cadena.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type empresaRecord struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	RUC       string    `json:"ruc,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Contacto  string    `json:"contacto,omitempty"`
	Activa    bool      `json:"activa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type tipoFormatoRecord struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	EmpresaID   string    `json:"empresa_id"`
	Imagen      string    `json:"imagen,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type pedidoRecord struct {
	ID                string          `json:"id"`
	Fecha             string          `json:"fecha"`
	Formato           string          `json:"formato"`
	Empresa           string          `json:"empresa"`
	Cantidad          int             `json:"cantidad"`
	NumeracionInicial int             `json:"numeracion_inicial"`
	Estado            string          `json:"estado"`
	FechaRecojo       string          `json:"fecha_recojo,omitempty"`
	Monto             decimal.Decimal `json:"monto"`
	Pagado            bool            `json:"pagado"`
	FechaPago         string          `json:"fecha_pago,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type formatoRecord struct {
	ID               string    `json:"id"`
	Numeracion       int       `json:"numeracion"`
	FechaIngreso     string    `json:"fecha_ingreso"`
	UbicacionActual  string    `json:"ubicacion_actual"`
	FechaSalida      string    `json:"fecha_salida,omitempty"`
	UbicacionDestino string    `json:"ubicacion_destino,omitempty"`
	Destinatario     string    `json:"destinatario,omitempty"`
	Observaciones    string    `json:"observaciones,omitempty"`
	PedidoID         string    `json:"pedido_id"`
	Estado           string    `json:"estado"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type talonarioRecord struct {
	ID               string    `json:"id"`
	FormatoTipo      string    `json:"formato_tipo"`
	Empresa          string    `json:"empresa"`
	NumeracionDesde  int       `json:"numeracion_desde"`
	NumeracionHasta  int       `json:"numeracion_hasta"`
	Cantidad         int       `json:"cantidad"`
	FechaIngreso     string    `json:"fecha_ingreso"`
	UbicacionAlmacen string    `json:"ubicacion_almacen"`
	FechaSalida      string    `json:"fecha_salida"`
	UbicacionDestino string    `json:"ubicacion_destino"`
	Observaciones    string    `json:"observaciones"`
	Estado           string    `json:"estado"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func empresaAEntidad(r empresaRecord) *entity.Empresa {
	return &entity.Empresa{
		ID: r.ID, Nombre: r.Nombre, RUC: r.RUC, Direccion: r.Direccion,
		Telefono: r.Telefono, Email: r.Email, Contacto: r.Contacto,
		Activa: r.Activa, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func empresaARecord(e *entity.Empresa) empresaRecord {
	return empresaRecord{
		ID: e.ID, Nombre: e.Nombre, RUC: e.RUC, Direccion: e.Direccion,
		Telefono: e.Telefono, Email: e.Email, Contacto: e.Contacto,
		Activa: e.Activa, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

func tipoAEntidad(r tipoFormatoRecord) *entity.TipoFormato {
	return &entity.TipoFormato{
		ID: r.ID, Nombre: r.Nombre, Descripcion: r.Descripcion, EmpresaID: r.EmpresaID,
		Imagen: r.Imagen, Activo: r.Activo, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func tipoARecord(t *entity.TipoFormato) tipoFormatoRecord {
	return tipoFormatoRecord{
		ID: t.ID, Nombre: t.Nombre, Descripcion: t.Descripcion, EmpresaID: t.EmpresaID,
		Imagen: t.Imagen, Activo: t.Activo, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func pedidoAEntidad(r pedidoRecord) *entity.Pedido {
	estado, pagado := normalizarEstadoPedido(r.Estado, r.Pagado)
	return &entity.Pedido{
		ID: r.ID, Fecha: r.Fecha, Formato: r.Formato, Empresa: r.Empresa,
		Cantidad: r.Cantidad, NumeracionInicial: r.NumeracionInicial,
		Estado: estado, FechaRecojo: r.FechaRecojo, Pagado: pagado,
		FechaPago: r.FechaPago, Monto: r.Monto,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// normalizarEstadoPedido mapea los valores de estado heredados del archivo
// viejo ("pagado", "sin pagar") al modelo actual de dos estados más bandera.
func normalizarEstadoPedido(estado string, pagado bool) (string, bool) {
	switch estado {
	case "pagado":
		return entity.PedidoRecogido, true
	case "sin pagar":
		return entity.PedidoRecogido, pagado
	default:
		return estado, pagado
	}
}

func pedidoARecord(p *entity.Pedido) pedidoRecord {
	return pedidoRecord{
		ID: p.ID, Fecha: p.Fecha, Formato: p.Formato, Empresa: p.Empresa,
		Cantidad: p.Cantidad, NumeracionInicial: p.NumeracionInicial,
		Estado: p.Estado, FechaRecojo: p.FechaRecojo, Pagado: p.Pagado,
		FechaPago: p.FechaPago, Monto: p.Monto,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func formatoAEntidad(r formatoRecord) *entity.Formato {
	return &entity.Formato{
		ID: r.ID, Numeracion: r.Numeracion, PedidoID: r.PedidoID, Estado: r.Estado,
		UbicacionActual: r.UbicacionActual, UbicacionDestino: r.UbicacionDestino,
		Destinatario: r.Destinatario, Observaciones: r.Observaciones,
		FechaIngreso: r.FechaIngreso, FechaSalida: r.FechaSalida,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func formatoARecord(f *entity.Formato) formatoRecord {
	return formatoRecord{
		ID: f.ID, Numeracion: f.Numeracion, PedidoID: f.PedidoID, Estado: f.Estado,
		UbicacionActual: f.UbicacionActual, UbicacionDestino: f.UbicacionDestino,
		Destinatario: f.Destinatario, Observaciones: f.Observaciones,
		FechaIngreso: f.FechaIngreso, FechaSalida: f.FechaSalida,
		CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt,
	}
}

func talonarioAEntidad(r talonarioRecord) entity.Talonario {
	return entity.Talonario{
		ID: r.ID, FormatoTipo: r.FormatoTipo, Empresa: r.Empresa,
		NumeracionDesde: r.NumeracionDesde, NumeracionHasta: r.NumeracionHasta,
		Cantidad: r.Cantidad, FechaIngreso: r.FechaIngreso,
		UbicacionAlmacen: r.UbicacionAlmacen, FechaSalida: r.FechaSalida,
		UbicacionDestino: r.UbicacionDestino, Observaciones: r.Observaciones,
		Estado: r.Estado, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func talonarioARecord(t entity.Talonario) talonarioRecord {
	return talonarioRecord{
		ID: t.ID, FormatoTipo: t.FormatoTipo, Empresa: t.Empresa,
		NumeracionDesde: t.NumeracionDesde, NumeracionHasta: t.NumeracionHasta,
		Cantidad: t.Cantidad, FechaIngreso: t.FechaIngreso,
		UbicacionAlmacen: t.UbicacionAlmacen, FechaSalida: t.FechaSalida,
		UbicacionDestino: t.UbicacionDestino, Observaciones: t.Observaciones,
		Estado: t.Estado, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func empresasAEntidades(rs []empresaRecord) []*entity.Empresa {
	out := make([]*entity.Empresa, len(rs))
	for i, r := range rs {
		out[i] = empresaAEntidad(r)
	}
	return out
}

func empresasARecords(es []*entity.Empresa) []empresaRecord {
	out := make([]empresaRecord, len(es))
	for i, e := range es {
		out[i] = empresaARecord(e)
	}
	return out
}

func tiposAEntidades(rs []tipoFormatoRecord) []*entity.TipoFormato {
	out := make([]*entity.TipoFormato, len(rs))
	for i, r := range rs {
		out[i] = tipoAEntidad(r)
	}
	return out
}

func tiposARecords(ts []*entity.TipoFormato) []tipoFormatoRecord {
	out := make([]tipoFormatoRecord, len(ts))
	for i, t := range ts {
		out[i] = tipoARecord(t)
	}
	return out
}

func pedidosAEntidades(rs []pedidoRecord) []*entity.Pedido {
	out := make([]*entity.Pedido, len(rs))
	for i, r := range rs {
		out[i] = pedidoAEntidad(r)
	}
	return out
}

func pedidosARecords(ps []*entity.Pedido) []pedidoRecord {
	out := make([]pedidoRecord, len(ps))
	for i, p := range ps {
		out[i] = pedidoARecord(p)
	}
	return out
}

func formatosAEntidades(rs []formatoRecord) []*entity.Formato {
	out := make([]*entity.Formato, len(rs))
	for i, r := range rs {
		out[i] = formatoAEntidad(r)
	}
	return out
}

func formatosARecords(fs []*entity.Formato) []formatoRecord {
	out := make([]formatoRecord, len(fs))
	for i, f := range fs {
		out[i] = formatoARecord(f)
	}
	return out
}
