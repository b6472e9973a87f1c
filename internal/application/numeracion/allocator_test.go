package numeracion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgv-soluciones/control-formatos/internal/application/numeracion"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeFormatoRepo struct {
	max    int
	maxErr error
}

func (f *fakeFormatoRepo) CreateBatch(ctx context.Context, formatos []*entity.Formato) error {
	return nil
}
func (f *fakeFormatoRepo) GetByID(ctx context.Context, id string) (*entity.Formato, error) {
	return nil, nil
}
func (f *fakeFormatoRepo) Update(ctx context.Context, formato *entity.Formato) error { return nil }
func (f *fakeFormatoRepo) List(ctx context.Context) ([]*entity.Formato, error)       { return nil, nil }
func (f *fakeFormatoRepo) ListByPedido(ctx context.Context, pedidoID string) ([]*entity.Formato, error) {
	return nil, nil
}
func (f *fakeFormatoRepo) ListarDisponibles(ctx context.Context, empresa, tipo string) ([]*entity.Formato, error) {
	return nil, nil
}
func (f *fakeFormatoRepo) MaxNumeracion(ctx context.Context, empresa, tipo string) (int, error) {
	return f.max, f.maxErr
}
func (f *fakeFormatoRepo) PrimeroEnRango(ctx context.Context, empresa, tipo string, desde, hasta int) (*entity.Formato, error) {
	return nil, nil
}
func (f *fakeFormatoRepo) DeleteByPedidoID(ctx context.Context, pedidoID string) error { return nil }
func (f *fakeFormatoRepo) BloquearPar(ctx context.Context, empresa, tipo string) error { return nil }

type fakeReservaRepo struct {
	reservados []int
	retirados  []int
	listErr    error
}

func (f *fakeReservaRepo) Reservados(ctx context.Context, empresa, tipo string) ([]int, error) {
	return f.reservados, f.listErr
}
func (f *fakeReservaRepo) Reservar(ctx context.Context, empresa, tipo string, n int) error {
	f.reservados = append(f.reservados, n)
	return nil
}
func (f *fakeReservaRepo) Retirar(ctx context.Context, empresa, tipo string, n int) error {
	f.retirados = append(f.retirados, n)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// NextNumeracion
// ──────────────────────────────────────────────────────────────────────────────

func TestNextNumeracion_ParSinHistoriaEmpiezaEnUno(t *testing.T) {
	a := numeracion.NewAllocator(&fakeFormatoRepo{max: 0}, &fakeReservaRepo{})
	n, err := a.NextNumeracion(context.Background(), "Factura", "Andinos")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNextNumeracion_MaximoMasUno(t *testing.T) {
	a := numeracion.NewAllocator(&fakeFormatoRepo{max: 250}, &fakeReservaRepo{})
	n, err := a.NextNumeracion(context.Background(), "Factura", "Andinos")
	require.NoError(t, err)
	assert.Equal(t, 251, n)
}

func TestNextNumeracion_PrefiereElMenorReservadoValido(t *testing.T) {
	reservas := &fakeReservaRepo{reservados: []int{150, 300, 400}}
	a := numeracion.NewAllocator(&fakeFormatoRepo{max: 250}, reservas)

	n, err := a.NextNumeracion(context.Background(), "Factura", "Andinos")
	require.NoError(t, err)

	assert.Equal(t, 300, n, "el reservado 150 quedó por debajo del máximo emitido y se ignora")
	assert.Equal(t, []int{300}, reservas.retirados, "el número asignado sale del fondo")
}

func TestNextNumeracion_ReservadoIgualAlCandidato(t *testing.T) {
	reservas := &fakeReservaRepo{reservados: []int{251}}
	a := numeracion.NewAllocator(&fakeFormatoRepo{max: 250}, reservas)

	n, err := a.NextNumeracion(context.Background(), "Factura", "Andinos")
	require.NoError(t, err)
	assert.Equal(t, 251, n)
	assert.Equal(t, []int{251}, reservas.retirados)
}

func TestNextNumeracion_FalloDelAlmacenNoDevuelveUno(t *testing.T) {
	falla := errors.New("disco corrupto")
	a := numeracion.NewAllocator(&fakeFormatoRepo{maxErr: falla}, &fakeReservaRepo{})

	n, err := a.NextNumeracion(context.Background(), "Factura", "Andinos")
	require.Error(t, err, "un fallo de lectura jamás debe degradarse a numeración 1")
	assert.ErrorIs(t, err, falla)
	assert.Zero(t, n)
}

func TestNextNumeracion_FalloDelFondoDeReservas(t *testing.T) {
	falla := errors.New("archivo ilegible")
	a := numeracion.NewAllocator(&fakeFormatoRepo{max: 10}, &fakeReservaRepo{listErr: falla})

	_, err := a.NextNumeracion(context.Background(), "Factura", "Andinos")
	assert.ErrorIs(t, err, falla)
}
