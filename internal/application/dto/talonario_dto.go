package dto

import "time"

// TalonarioResponse representación pública de un talonario.
type TalonarioResponse struct {
	ID               string    `json:"id"`
	FormatoTipo      string    `json:"formato_tipo"`
	Empresa          string    `json:"empresa"`
	NumeracionDesde  int       `json:"numeracion_desde"`
	NumeracionHasta  int       `json:"numeracion_hasta"`
	Cantidad         int       `json:"cantidad"`
	FechaIngreso     string    `json:"fecha_ingreso"`
	UbicacionAlmacen string    `json:"ubicacion_almacen"`
	FechaSalida      string    `json:"fecha_salida,omitempty"`
	UbicacionDestino string    `json:"ubicacion_destino,omitempty"`
	Observaciones    string    `json:"observaciones,omitempty"`
	Estado           string    `json:"estado"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ParticionResponse resultado de generar la partición de un par. Si
// NuevosPendientes es mayor a cero hay numeración recién materializada
// esperando que el llamador elija tamaño e invoque incorporar-nuevos.
type ParticionResponse struct {
	Talonarios       []TalonarioResponse `json:"talonarios"`
	NuevosPendientes int                 `json:"nuevos_pendientes"`
	NuevosDesde      int                 `json:"nuevos_desde,omitempty"`
	NuevosHasta      int                 `json:"nuevos_hasta,omitempty"`
}

// GenerarTalonariosRequest parámetros de la partición de un par.
type GenerarTalonariosRequest struct {
	Empresa string `json:"empresa"`
	Formato string `json:"formato"`
	Tamanio int    `json:"tamanio"` // hojas por talonario, habitualmente 50 o 100
}

// IncorporarNuevosRequest tamaño elegido para el incremento pendiente.
type IncorporarNuevosRequest struct {
	Empresa       string `json:"empresa"`
	Formato       string `json:"formato"`
	Tamanio       int    `json:"tamanio"`        // tamaño de la cola existente
	TamanioNuevos int    `json:"tamanio_nuevos"` // tamaño solo para el incremento
}

// GuardarTalonariosRequest persiste el conjunto mostrado del par.
type GuardarTalonariosRequest struct {
	Empresa    string              `json:"empresa"`
	Formato    string              `json:"formato"`
	Talonarios []TalonarioResponse `json:"talonarios"`
}

// RedimensionarRequest retila los talonarios seleccionados con otro tamaño.
type RedimensionarRequest struct {
	Empresa string   `json:"empresa"`
	Formato string   `json:"formato"`
	IDs     []string `json:"ids"`
	Tamanio int      `json:"tamanio"`
}

// EnviarTalonariosRequest despacho masivo de talonarios seleccionados.
type EnviarTalonariosRequest struct {
	Empresa          string   `json:"empresa"`
	Formato          string   `json:"formato"`
	IDs              []string `json:"ids"`
	FechaSalida      string   `json:"fecha_salida"`
	UbicacionDestino string   `json:"ubicacion_destino"`
	Observaciones    string   `json:"observaciones"`
}

// EnviarTalonariosResponse cuántos talonarios cambiaron a enviado.
type EnviarTalonariosResponse struct {
	Enviados int `json:"enviados"`
}

// ActualizarTalonarioRequest edición individual; limpiar la fecha de salida
// devuelve el talonario a disponible, fijarla lo marca enviado.
type ActualizarTalonarioRequest struct {
	Empresa          string  `json:"empresa"`
	Formato          string  `json:"formato"`
	FechaSalida      *string `json:"fecha_salida"`
	UbicacionDestino *string `json:"ubicacion_destino"`
	Observaciones    *string `json:"observaciones"`
	UbicacionAlmacen *string `json:"ubicacion_almacen"`
}
