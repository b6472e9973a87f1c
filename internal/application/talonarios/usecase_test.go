package talonarios_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/talonarios"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memTalonarioRepo struct {
	guardados []entity.Talonario
	salvadas  int
}

func (m *memTalonarioRepo) Cargar(ctx context.Context, empresa, tipo string) ([]entity.Talonario, error) {
	return append([]entity.Talonario{}, m.guardados...), nil
}
func (m *memTalonarioRepo) Guardar(ctx context.Context, empresa, tipo string, ts []entity.Talonario) error {
	m.guardados = append([]entity.Talonario{}, ts...)
	m.salvadas++
	return nil
}

type memFormatoRepo struct {
	disponibles []*entity.Formato
}

func (m *memFormatoRepo) CreateBatch(ctx context.Context, fs []*entity.Formato) error { return nil }
func (m *memFormatoRepo) GetByID(ctx context.Context, id string) (*entity.Formato, error) {
	return nil, nil
}
func (m *memFormatoRepo) Update(ctx context.Context, f *entity.Formato) error { return nil }
func (m *memFormatoRepo) List(ctx context.Context) ([]*entity.Formato, error) { return nil, nil }
func (m *memFormatoRepo) ListByPedido(ctx context.Context, pedidoID string) ([]*entity.Formato, error) {
	return nil, nil
}
func (m *memFormatoRepo) ListarDisponibles(ctx context.Context, empresa, tipo string) ([]*entity.Formato, error) {
	return m.disponibles, nil
}
func (m *memFormatoRepo) MaxNumeracion(ctx context.Context, empresa, tipo string) (int, error) {
	return 0, nil
}
func (m *memFormatoRepo) PrimeroEnRango(ctx context.Context, empresa, tipo string, desde, hasta int) (*entity.Formato, error) {
	for _, f := range m.disponibles {
		if f.Numeracion >= desde && f.Numeracion <= hasta {
			return f, nil
		}
	}
	return nil, nil
}
func (m *memFormatoRepo) DeleteByPedidoID(ctx context.Context, pedidoID string) error { return nil }
func (m *memFormatoRepo) BloquearPar(ctx context.Context, empresa, tipo string) error { return nil }

type memPedidoRepo struct {
	pedidos map[string]*entity.Pedido
}

func (m *memPedidoRepo) Create(ctx context.Context, p *entity.Pedido) error { return nil }
func (m *memPedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	return m.pedidos[id], nil
}
func (m *memPedidoRepo) Update(ctx context.Context, p *entity.Pedido) error { return nil }
func (m *memPedidoRepo) List(ctx context.Context) ([]*entity.Pedido, error) { return nil, nil }
func (m *memPedidoRepo) Buscar(ctx context.Context, q string) ([]*entity.Pedido, error) {
	return nil, nil
}
func (m *memPedidoRepo) Filtrar(ctx context.Context, f repository.FiltroPedidos) ([]*entity.Pedido, error) {
	return nil, nil
}
func (m *memPedidoRepo) Delete(ctx context.Context, id string) error { return nil }

func talonarioGuardado(id string, desde, hasta int, estado string) entity.Talonario {
	return entity.Talonario{
		ID:              id,
		FormatoTipo:     "Guía",
		Empresa:         "Andinos",
		NumeracionDesde: desde,
		NumeracionHasta: hasta,
		Cantidad:        hasta - desde + 1,
		FechaIngreso:    "2026-01-10",
		Estado:          estado,
	}
}

func nuevoEntorno(guardados []entity.Talonario, disponibles []*entity.Formato) (*talonarios.TalonarioUseCase, *memTalonarioRepo) {
	talRepo := &memTalonarioRepo{guardados: guardados}
	uc := talonarios.NewTalonarioUseCase(
		talRepo,
		&memFormatoRepo{disponibles: disponibles},
		&memPedidoRepo{pedidos: map[string]*entity.Pedido{}},
	)
	return uc, talRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Generar
// ──────────────────────────────────────────────────────────────────────────────

func formatosRango(desde, hasta int) []*entity.Formato {
	var out []*entity.Formato
	for n := desde; n <= hasta; n++ {
		out = append(out, &entity.Formato{Numeracion: n, PedidoID: "p1", Estado: entity.FormatoDisponible})
	}
	return out
}

func TestGenerar_NoPersisteLaVistaPropuesta(t *testing.T) {
	uc, talRepo := nuevoEntorno(nil, formatosRango(1, 120))

	out, err := uc.Generar(context.Background(), dto.GenerarTalonariosRequest{
		Empresa: "Andinos", Formato: "Guía", Tamanio: 50,
	})
	require.NoError(t, err)

	require.Len(t, out.Talonarios, 3, "primera partición: el rango entero se tila al tamaño pedido")
	assert.Equal(t, 1, out.Talonarios[0].NumeracionDesde)
	assert.Equal(t, 50, out.Talonarios[0].NumeracionHasta)
	assert.Equal(t, 101, out.Talonarios[2].NumeracionDesde)
	assert.Equal(t, 120, out.Talonarios[2].NumeracionHasta)
	assert.Zero(t, out.NuevosPendientes, "sin talonarios previos no hay incremento pendiente")
	assert.Zero(t, talRepo.salvadas, "generar no debe escribir; guardar es decisión aparte")
}

func TestGenerar_TamanioPorDefecto(t *testing.T) {
	uc, _ := nuevoEntorno(
		[]entity.Talonario{talonarioGuardado("a", 1, 400, entity.TalonarioDisponible)},
		formatosRango(1, 400),
	)
	out, err := uc.Generar(context.Background(), dto.GenerarTalonariosRequest{
		Empresa: "Andinos", Formato: "Guía",
	})
	require.NoError(t, err)
	require.Len(t, out.Talonarios, 4, "sin tamaño explícito se usa el de defecto (100)")
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardar
// ──────────────────────────────────────────────────────────────────────────────

func TestGuardar_RechazaRangosSolapados(t *testing.T) {
	uc, talRepo := nuevoEntorno(nil, nil)

	err := uc.Guardar(context.Background(), dto.GuardarTalonariosRequest{
		Empresa: "Andinos",
		Formato: "Guía",
		Talonarios: []dto.TalonarioResponse{
			{ID: "a", NumeracionDesde: 1, NumeracionHasta: 100},
			{ID: "b", NumeracionDesde: 90, NumeracionHasta: 150},
		},
	})
	require.ErrorIs(t, err, domain.ErrIntegridad)
	assert.Zero(t, talRepo.salvadas, "un conjunto inválido no debe persistirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Enviar
// ──────────────────────────────────────────────────────────────────────────────

func TestEnviar_OmiteNoDisponiblesYCuentaElegibles(t *testing.T) {
	uc, talRepo := nuevoEntorno([]entity.Talonario{
		talonarioGuardado("a", 1, 50, entity.TalonarioDisponible),
		talonarioGuardado("b", 51, 100, entity.TalonarioEnviado),
		talonarioGuardado("c", 101, 150, entity.TalonarioDisponible),
	}, nil)

	enviados, err := uc.Enviar(context.Background(), dto.EnviarTalonariosRequest{
		Empresa:          "Andinos",
		Formato:          "Guía",
		IDs:              []string{"a", "b", "c"},
		FechaSalida:      "2026-03-01",
		UbicacionDestino: "Sucursal Norte",
		Observaciones:    "envío mensual",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, enviados, "el ya enviado se omite en silencio")

	assert.Equal(t, 1, talRepo.salvadas, "todo el lote se persiste en una sola escritura")
	for _, tal := range talRepo.guardados {
		if tal.ID == "a" || tal.ID == "c" {
			assert.Equal(t, entity.TalonarioEnviado, tal.Estado)
			assert.Equal(t, "2026-03-01", tal.FechaSalida)
			assert.Equal(t, "Sucursal Norte", tal.UbicacionDestino)
		}
	}
}

func TestEnviar_NingunoElegible(t *testing.T) {
	uc, talRepo := nuevoEntorno([]entity.Talonario{
		talonarioGuardado("b", 51, 100, entity.TalonarioEnviado),
	}, nil)

	_, err := uc.Enviar(context.Background(), dto.EnviarTalonariosRequest{
		Empresa:          "Andinos",
		Formato:          "Guía",
		IDs:              []string{"b"},
		FechaSalida:      "2026-03-01",
		UbicacionDestino: "Sucursal Norte",
	})
	require.ErrorIs(t, err, domain.ErrSinDisponibles)
	assert.Zero(t, talRepo.salvadas)
}

func TestEnviar_DatosObligatorios(t *testing.T) {
	uc, _ := nuevoEntorno(nil, nil)

	_, err := uc.Enviar(context.Background(), dto.EnviarTalonariosRequest{
		Empresa: "Andinos", Formato: "Guía", IDs: []string{"a"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha de salida y destino son obligatorios")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar
// ──────────────────────────────────────────────────────────────────────────────

func TestActualizar_LimpiarFechaSalidaVuelveADisponible(t *testing.T) {
	enviado := talonarioGuardado("a", 1, 50, entity.TalonarioEnviado)
	enviado.FechaSalida = "2026-02-01"
	enviado.UbicacionDestino = "Sucursal Sur"
	uc, talRepo := nuevoEntorno([]entity.Talonario{enviado}, nil)

	vacia := ""
	out, err := uc.Actualizar(context.Background(), "a", dto.ActualizarTalonarioRequest{
		Empresa:     "Andinos",
		Formato:     "Guía",
		FechaSalida: &vacia,
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.TalonarioDisponible, out.Estado, "sin fecha de salida el talonario vuelve al almacén")
	assert.Empty(t, out.FechaSalida)
	assert.Equal(t, entity.TalonarioDisponible, talRepo.guardados[0].Estado)
}

func TestActualizar_FijarFechaSalidaMarcaEnviado(t *testing.T) {
	uc, _ := nuevoEntorno([]entity.Talonario{
		talonarioGuardado("a", 1, 50, entity.TalonarioDisponible),
	}, nil)

	fecha := "2026-03-05"
	out, err := uc.Actualizar(context.Background(), "a", dto.ActualizarTalonarioRequest{
		Empresa:     "Andinos",
		Formato:     "Guía",
		FechaSalida: &fecha,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.TalonarioEnviado, out.Estado)
	assert.Equal(t, fecha, out.FechaSalida)
}

func TestActualizar_IDInexistente(t *testing.T) {
	uc, _ := nuevoEntorno(nil, nil)
	out, err := uc.Actualizar(context.Background(), "zzz", dto.ActualizarTalonarioRequest{
		Empresa: "Andinos", Formato: "Guía",
	})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// IncorporarNuevos
// ──────────────────────────────────────────────────────────────────────────────

func TestIncorporarNuevos_AgregaElIncrementoConSuTamanio(t *testing.T) {
	uc, _ := nuevoEntorno(
		[]entity.Talonario{talonarioGuardado("a", 1, 100, entity.TalonarioDisponible)},
		formatosRango(1, 160),
	)

	out, err := uc.IncorporarNuevos(context.Background(), dto.IncorporarNuevosRequest{
		Empresa:       "Andinos",
		Formato:       "Guía",
		Tamanio:       100,
		TamanioNuevos: 30,
	})
	require.NoError(t, err)

	require.Len(t, out.Talonarios, 3)
	assert.Equal(t, 101, out.Talonarios[1].NumeracionDesde)
	assert.Equal(t, 130, out.Talonarios[1].NumeracionHasta)
	assert.Equal(t, 131, out.Talonarios[2].NumeracionDesde)
	assert.Equal(t, 160, out.Talonarios[2].NumeracionHasta)
	assert.Zero(t, out.NuevosPendientes, "tras incorporar no queda incremento pendiente")
}
