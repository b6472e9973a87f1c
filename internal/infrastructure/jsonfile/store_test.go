package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func abrirStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func pedidoDePrueba(id string, inicial, cantidad int) *entity.Pedido {
	now := time.Now()
	return &entity.Pedido{
		ID:                id,
		Fecha:             "2026-02-01",
		Formato:           "Guía de Remisión",
		Empresa:           "Transportes Andinos",
		Cantidad:          cantidad,
		NumeracionInicial: inicial,
		Estado:            entity.PedidoRecogido,
		FechaRecojo:       "2026-02-05",
		Monto:             decimal.NewFromFloat(150.00),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func formatosDePedido(p *entity.Pedido) []*entity.Formato {
	now := time.Now()
	var out []*entity.Formato
	for i := 0; i < p.Cantidad; i++ {
		out = append(out, &entity.Formato{
			ID:              p.ID + "-f" + string(rune('a'+i)),
			Numeracion:      p.NumeracionInicial + i,
			PedidoID:        p.ID,
			Estado:          entity.FormatoDisponible,
			UbicacionActual: entity.UbicacionAlmacen,
			FechaIngreso:    "2026-02-05",
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Store
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_SegundaInstanciaRechazada(t *testing.T) {
	_, dir := abrirStore(t)

	_, err := Open(dir)
	require.Error(t, err, "dos procesos no deben compartir el directorio de datos")
	assert.ErrorIs(t, err, domain.ErrAlmacen)
}

func TestStore_PersisteEntreAperturas(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	ctx := context.Background()
	repo := NewPedidoRepository(store)
	require.NoError(t, repo.Create(ctx, pedidoDePrueba("p1", 1, 3)))
	require.NoError(t, store.Close())

	reabierto, err := Open(dir)
	require.NoError(t, err)
	defer reabierto.Close()

	lista, err := NewPedidoRepository(reabierto).List(ctx)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "p1", lista[0].ID)
	assert.True(t, lista[0].Monto.Equal(decimal.NewFromFloat(150.00)), "el monto sobrevive el viaje por JSON")
}

func TestStore_EscrituraAtomicaNoDejaTemporales(t *testing.T) {
	store, dir := abrirStore(t)
	ctx := context.Background()

	require.NoError(t, NewEmpresaRepository(store).Create(ctx, &entity.Empresa{ID: "e1", Nombre: "Andinos", Activa: true}))

	restos, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, restos, "el temporal debe desaparecer tras el rename")

	_, err = os.Stat(filepath.Join(dir, "empresas.json"))
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresaRepo_DuplicadoPorNombre(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	repo := NewEmpresaRepository(store)

	require.NoError(t, repo.Create(ctx, &entity.Empresa{ID: "e1", Nombre: "Andinos", Activa: true}))
	err := repo.Create(ctx, &entity.Empresa{ID: "e2", Nombre: "andinos", Activa: true})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre es único sin distinguir mayúsculas")
}

func TestEmpresaRepo_DeleteConReferencias(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	empresas := NewEmpresaRepository(store)
	pedidos := NewPedidoRepository(store)

	require.NoError(t, empresas.Create(ctx, &entity.Empresa{ID: "e1", Nombre: "Transportes Andinos", Activa: true}))
	require.NoError(t, pedidos.Create(ctx, pedidoDePrueba("p1", 1, 2)))

	err := empresas.Delete(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrConReferencias)

	e, err := empresas.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.NotNil(t, e, "la empresa referenciada no debe borrarse")
}

func TestFormatoRepo_CreateBatchRechazaNumeracionOcupada(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	pedidos := NewPedidoRepository(store)
	formatos := NewFormatoRepository(store)

	p1 := pedidoDePrueba("p1", 1, 3)
	require.NoError(t, pedidos.Create(ctx, p1))
	require.NoError(t, formatos.CreateBatch(ctx, formatosDePedido(p1)))

	// Mismo par, numeración 3 ya ocupada.
	p2 := pedidoDePrueba("p2", 3, 2)
	require.NoError(t, pedidos.Create(ctx, p2))
	err := formatos.CreateBatch(ctx, formatosDePedido(p2))
	require.ErrorIs(t, err, domain.ErrIntegridad)

	lista, err := formatos.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lista, 3, "del lote rechazado no debe quedar ningún formato")
}

func TestFormatoRepo_MaxNumeracionPorPar(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	pedidos := NewPedidoRepository(store)
	formatos := NewFormatoRepository(store)

	p1 := pedidoDePrueba("p1", 1, 3)
	require.NoError(t, pedidos.Create(ctx, p1))
	require.NoError(t, formatos.CreateBatch(ctx, formatosDePedido(p1)))

	otro := pedidoDePrueba("p2", 500, 1)
	otro.Empresa = "Otra Imprenta"
	require.NoError(t, pedidos.Create(ctx, otro))
	require.NoError(t, formatos.CreateBatch(ctx, formatosDePedido(otro)))

	max, err := formatos.MaxNumeracion(ctx, "Transportes Andinos", "Guía de Remisión")
	require.NoError(t, err)
	assert.Equal(t, 3, max, "la numeración de otro par no cuenta")

	vacio, err := formatos.MaxNumeracion(ctx, "Inexistente", "Nada")
	require.NoError(t, err)
	assert.Zero(t, vacio)
}

func TestPedidoRepo_BuscarIgnoraTildes(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	repo := NewPedidoRepository(store)

	p := pedidoDePrueba("p1", 1, 1)
	p.Formato = "Guía de Remisión"
	require.NoError(t, repo.Create(ctx, p))

	res, err := repo.Buscar(ctx, "guia")
	require.NoError(t, err)
	assert.Len(t, res, 1, "la búsqueda no distingue tildes ni mayúsculas")
}

func TestPedidoRepo_FiltrarPorRangoDeFechas(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	repo := NewPedidoRepository(store)

	p1 := pedidoDePrueba("p1", 1, 1)
	p1.Fecha = "2026-01-15"
	p2 := pedidoDePrueba("p2", 2, 1)
	p2.Fecha = "2026-03-20"
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))

	res, err := repo.Filtrar(ctx, repository.FiltroPedidos{FechaDesde: "2026-02-01", FechaHasta: "2026-12-31"})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "p2", res[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_FalloDescartaTodo(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	runner := NewTxRunner(store)

	p1 := pedidoDePrueba("p1", 1, 3)
	require.NoError(t, NewPedidoRepository(store).Create(ctx, p1))
	require.NoError(t, NewFormatoRepository(store).CreateBatch(ctx, formatosDePedido(p1)))

	// El pedido entra pero su lote choca con la numeración 3: nada debe quedar.
	err := runner.Run(ctx, func(pr repository.PedidoRepository, fr repository.FormatoRepository, _ repository.NumeracionRepository) error {
		p2 := pedidoDePrueba("p2", 3, 2)
		if err := pr.Create(ctx, p2); err != nil {
			return err
		}
		return fr.CreateBatch(ctx, formatosDePedido(p2))
	})
	require.ErrorIs(t, err, domain.ErrIntegridad)

	lista, err := NewPedidoRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, lista, 1, "el pedido de la transacción fallida no debe sobrevivir")
}

func TestTxRunner_ExitoPersisteAmbasColecciones(t *testing.T) {
	store, dir := abrirStore(t)
	ctx := context.Background()
	runner := NewTxRunner(store)

	p := pedidoDePrueba("p1", 1, 2)
	err := runner.Run(ctx, func(pr repository.PedidoRepository, fr repository.FormatoRepository, _ repository.NumeracionRepository) error {
		if err := pr.Create(ctx, p); err != nil {
			return err
		}
		return fr.CreateBatch(ctx, formatosDePedido(p))
	})
	require.NoError(t, err)

	for _, nombre := range []string{"pedidos.json", "formatos.json"} {
		_, statErr := os.Stat(filepath.Join(dir, nombre))
		assert.NoError(t, statErr, nombre)
	}

	formatos, err := NewFormatoRepository(store).ListByPedido(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, formatos, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Talonarios y reservas por par
// ──────────────────────────────────────────────────────────────────────────────

func TestTalonarioRepo_ArchivoPorPar(t *testing.T) {
	store, dir := abrirStore(t)
	ctx := context.Background()
	repo := NewTalonarioRepository(store)

	ts := []entity.Talonario{{
		ID: "t1", FormatoTipo: "Guía de Remisión", Empresa: "Transportes Andinos",
		NumeracionDesde: 1, NumeracionHasta: 100, Cantidad: 100,
		Estado: entity.TalonarioDisponible,
	}}
	require.NoError(t, repo.Guardar(ctx, "Transportes Andinos", "Guía de Remisión", ts))

	_, err := os.Stat(filepath.Join(dir, "talonarios_transportes_andinos_guia_de_remision.json"))
	assert.NoError(t, err, "cada par tiene su propio archivo, con nombre saneado")

	cargados, err := repo.Cargar(ctx, "Transportes Andinos", "Guía de Remisión")
	require.NoError(t, err)
	require.Len(t, cargados, 1)
	assert.Equal(t, "t1", cargados[0].ID)

	otros, err := repo.Cargar(ctx, "Otra", "Factura")
	require.NoError(t, err)
	assert.Empty(t, otros, "un par sin historia carga vacío")
}

func TestStore_NormalizaEstadosHeredados(t *testing.T) {
	dir := t.TempDir()
	viejo := `[
  {"id": "p1", "fecha": "2024-05-01", "formato": "Factura", "empresa": "Andinos",
   "cantidad": 10, "numeracion_inicial": 1, "estado": "pagado", "monto": 80},
  {"id": "p2", "fecha": "2024-05-02", "formato": "Factura", "empresa": "Andinos",
   "cantidad": 10, "numeracion_inicial": 11, "estado": "sin pagar", "monto": 80}
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pedidos.json"), []byte(viejo), 0o644))

	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	lista, err := NewPedidoRepository(store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 2)

	porID := map[string]*entity.Pedido{lista[0].ID: lista[0], lista[1].ID: lista[1]}
	assert.Equal(t, entity.PedidoRecogido, porID["p1"].Estado)
	assert.True(t, porID["p1"].Pagado, `el estado viejo "pagado" implica la bandera`)
	assert.Equal(t, entity.PedidoRecogido, porID["p2"].Estado)
	assert.False(t, porID["p2"].Pagado)
}

func TestNumeracionRepo_ReservarYRetirar(t *testing.T) {
	store, _ := abrirStore(t)
	ctx := context.Background()
	repo := NewNumeracionRepository(store)

	require.NoError(t, repo.Reservar(ctx, "Andinos", "Guía", 300))
	require.NoError(t, repo.Reservar(ctx, "Andinos", "Guía", 150))
	require.NoError(t, repo.Reservar(ctx, "Andinos", "Guía", 150), "reservar dos veces no es error")

	nums, err := repo.Reservados(ctx, "Andinos", "Guía")
	require.NoError(t, err)
	assert.Equal(t, []int{150, 300}, nums, "orden ascendente y sin duplicados")

	require.NoError(t, repo.Retirar(ctx, "Andinos", "Guía", 150))
	nums, err = repo.Reservados(ctx, "Andinos", "Guía")
	require.NoError(t, err)
	assert.Equal(t, []int{300}, nums)
}
