// Package talonarios orquesta la partición de formatos en talonarios y su
// despacho, sobre el particionador puro del dominio.
package talonarios

import (
	"context"
	"fmt"
	"time"

	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
	domtal "github.com/sgv-soluciones/control-formatos/internal/domain/talonarios"
)

// TalonarioUseCase reconcilia talonarios guardados con los formatos del par,
// persiste conjuntos y procesa envíos masivos.
type TalonarioUseCase struct {
	talonarioRepo repository.TalonarioRepository
	formatoRepo   repository.FormatoRepository
	pedidoRepo    repository.PedidoRepository
}

// NewTalonarioUseCase construye el caso de uso.
func NewTalonarioUseCase(
	talonarioRepo repository.TalonarioRepository,
	formatoRepo repository.FormatoRepository,
	pedidoRepo repository.PedidoRepository,
) *TalonarioUseCase {
	return &TalonarioUseCase{
		talonarioRepo: talonarioRepo,
		formatoRepo:   formatoRepo,
		pedidoRepo:    pedidoRepo,
	}
}

// Generar reconcilia: carga los talonarios guardados del par y los formatos
// disponibles, retila la cola disponible con el tamaño pedido y reporta el
// incremento de numeración nueva pendiente de decisión. No persiste; el
// llamador revisa y llama Guardar.
func (uc *TalonarioUseCase) Generar(ctx context.Context, in dto.GenerarTalonariosRequest) (*dto.ParticionResponse, error) {
	if in.Empresa == "" || in.Formato == "" {
		return nil, fmt.Errorf("%w: empresa y formato son requeridos", domain.ErrInvalidInput)
	}
	if in.Tamanio == 0 {
		in.Tamanio = domtal.TamanioDefecto
	}

	p, err := uc.particionar(ctx, in.Empresa, in.Formato, in.Tamanio)
	if err != nil {
		return nil, err
	}

	resp := &dto.ParticionResponse{
		Talonarios:       talonariosToResponses(p.Talonarios),
		NuevosPendientes: p.Nuevos(),
	}
	if p.Nuevos() > 0 {
		resp.NuevosDesde = p.NuevosDesde
		resp.NuevosHasta = p.NuevosHasta
	}
	return resp, nil
}

// IncorporarNuevos repite la partición y fusiona el incremento pendiente con
// su propio tamaño, que puede diferir del de la cola existente.
func (uc *TalonarioUseCase) IncorporarNuevos(ctx context.Context, in dto.IncorporarNuevosRequest) (*dto.ParticionResponse, error) {
	if in.Empresa == "" || in.Formato == "" {
		return nil, fmt.Errorf("%w: empresa y formato son requeridos", domain.ErrInvalidInput)
	}
	if in.Tamanio == 0 {
		in.Tamanio = domtal.TamanioDefecto
	}
	if in.TamanioNuevos == 0 {
		in.TamanioNuevos = in.Tamanio
	}

	p, err := uc.particionar(ctx, in.Empresa, in.Formato, in.Tamanio)
	if err != nil {
		return nil, err
	}
	todos, err := domtal.IncorporarNuevos(in.Formato, in.Empresa, p, in.TamanioNuevos, uc.resolver(ctx, in.Empresa, in.Formato))
	if err != nil {
		return nil, err
	}
	return &dto.ParticionResponse{Talonarios: talonariosToResponses(todos)}, nil
}

// Cargar devuelve el conjunto guardado del par tal cual fue persistido.
func (uc *TalonarioUseCase) Cargar(ctx context.Context, empresa, tipo string) ([]dto.TalonarioResponse, error) {
	guardados, err := uc.talonarioRepo.Cargar(ctx, empresa, tipo)
	if err != nil {
		return nil, err
	}
	return talonariosToResponses(guardados), nil
}

// Guardar persiste el conjunto completo del par, validando que los rangos no
// se solapen entre sí.
func (uc *TalonarioUseCase) Guardar(ctx context.Context, in dto.GuardarTalonariosRequest) error {
	if in.Empresa == "" || in.Formato == "" {
		return fmt.Errorf("%w: empresa y formato son requeridos", domain.ErrInvalidInput)
	}
	ts := responsesToTalonarios(in.Talonarios, in.Empresa, in.Formato)
	if err := validarRangos(ts); err != nil {
		return err
	}
	return uc.talonarioRepo.Guardar(ctx, in.Empresa, in.Formato, ts)
}

// Redimensionar retila exactamente los talonarios seleccionados del conjunto
// guardado con el nuevo tamaño y persiste el resultado empalmado.
func (uc *TalonarioUseCase) Redimensionar(ctx context.Context, in dto.RedimensionarRequest) ([]dto.TalonarioResponse, error) {
	guardados, err := uc.talonarioRepo.Cargar(ctx, in.Empresa, in.Formato)
	if err != nil {
		return nil, err
	}
	nuevos, err := domtal.Redimensionar(guardados, in.IDs, in.Tamanio)
	if err != nil {
		return nil, err
	}
	if err := uc.talonarioRepo.Guardar(ctx, in.Empresa, in.Formato, nuevos); err != nil {
		return nil, err
	}
	return talonariosToResponses(nuevos), nil
}

// Enviar marca como enviados los talonarios seleccionados que estén
// disponibles, estampando fecha de salida, destino y observaciones, y
// persiste el conjunto en una sola escritura. Los seleccionados que no estén
// disponibles se omiten en silencio; si ninguno era elegible se devuelve
// domain.ErrSinDisponibles.
func (uc *TalonarioUseCase) Enviar(ctx context.Context, in dto.EnviarTalonariosRequest) (int, error) {
	if in.FechaSalida == "" || in.UbicacionDestino == "" {
		return 0, fmt.Errorf("%w: fecha de salida y ubicación de destino son obligatorias", domain.ErrInvalidInput)
	}
	if len(in.IDs) == 0 {
		return 0, fmt.Errorf("%w: selecciona al menos un talonario", domain.ErrInvalidInput)
	}

	guardados, err := uc.talonarioRepo.Cargar(ctx, in.Empresa, in.Formato)
	if err != nil {
		return 0, err
	}

	seleccion := make(map[string]bool, len(in.IDs))
	for _, id := range in.IDs {
		seleccion[id] = true
	}

	now := time.Now()
	enviados := 0
	for i := range guardados {
		t := &guardados[i]
		if !seleccion[t.ID] || !t.Disponible() {
			continue
		}
		t.Estado = entity.TalonarioEnviado
		t.FechaSalida = in.FechaSalida
		t.UbicacionDestino = in.UbicacionDestino
		t.Observaciones = in.Observaciones
		t.UpdatedAt = now
		enviados++
	}
	if enviados == 0 {
		return 0, domain.ErrSinDisponibles
	}

	if err := uc.talonarioRepo.Guardar(ctx, in.Empresa, in.Formato, guardados); err != nil {
		return 0, err
	}
	return enviados, nil
}

// Actualizar edita un talonario del conjunto guardado. Limpiar la fecha de
// salida lo devuelve a disponible; fijar una lo marca enviado.
func (uc *TalonarioUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarTalonarioRequest) (*dto.TalonarioResponse, error) {
	guardados, err := uc.talonarioRepo.Cargar(ctx, in.Empresa, in.Formato)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range guardados {
		if guardados[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	t := &guardados[idx]
	if in.FechaSalida != nil {
		t.FechaSalida = *in.FechaSalida
		if *in.FechaSalida == "" {
			t.Estado = entity.TalonarioDisponible
		} else {
			t.Estado = entity.TalonarioEnviado
		}
	}
	if in.UbicacionDestino != nil {
		t.UbicacionDestino = *in.UbicacionDestino
	}
	if in.Observaciones != nil {
		t.Observaciones = *in.Observaciones
	}
	if in.UbicacionAlmacen != nil {
		t.UbicacionAlmacen = *in.UbicacionAlmacen
	}
	t.UpdatedAt = time.Now()

	if err := uc.talonarioRepo.Guardar(ctx, in.Empresa, in.Formato, guardados); err != nil {
		return nil, err
	}
	r := talonarioToResponse(*t)
	return &r, nil
}

// particionar carga estado y delega en el particionador del dominio.
func (uc *TalonarioUseCase) particionar(ctx context.Context, empresa, tipo string, tamanio int) (domtal.Particion, error) {
	disponibles, err := uc.formatoRepo.ListarDisponibles(ctx, empresa, tipo)
	if err != nil {
		return domtal.Particion{}, fmt.Errorf("formatos disponibles de %s/%s: %w", empresa, tipo, err)
	}
	minU, maxU := 0, 0
	for _, f := range disponibles {
		if minU == 0 || f.Numeracion < minU {
			minU = f.Numeracion
		}
		if f.Numeracion > maxU {
			maxU = f.Numeracion
		}
	}

	guardados, err := uc.talonarioRepo.Cargar(ctx, empresa, tipo)
	if err != nil {
		return domtal.Particion{}, err
	}
	return domtal.Particionar(tipo, empresa, guardados, minU, maxU, tamanio, uc.resolver(ctx, empresa, tipo))
}

// resolver busca la fecha de ingreso de un subrango: la fecha de recojo del
// pedido dueño de algún formato disponible dentro del rango, o la de hoy.
func (uc *TalonarioUseCase) resolver(ctx context.Context, empresa, tipo string) domtal.FechaIngresoResolver {
	return func(desde, hasta int) string {
		hoy := time.Now().Format("2006-01-02")
		f, err := uc.formatoRepo.PrimeroEnRango(ctx, empresa, tipo, desde, hasta)
		if err != nil || f == nil {
			return hoy
		}
		p, err := uc.pedidoRepo.GetByID(ctx, f.PedidoID)
		if err != nil || p == nil || p.FechaRecojo == "" {
			return hoy
		}
		return p.FechaRecojo
	}
}

// validarRangos rechaza conjuntos con solapamiento de numeración.
func validarRangos(ts []entity.Talonario) error {
	domtal.Ordenar(ts)
	for i, t := range ts {
		if t.NumeracionHasta < t.NumeracionDesde {
			return fmt.Errorf("%w: rango invertido [%d, %d]", domain.ErrIntegridad, t.NumeracionDesde, t.NumeracionHasta)
		}
		if i > 0 && t.NumeracionDesde <= ts[i-1].NumeracionHasta {
			return fmt.Errorf("%w: rangos solapados [%d, %d] y [%d, %d]",
				domain.ErrIntegridad,
				ts[i-1].NumeracionDesde, ts[i-1].NumeracionHasta,
				t.NumeracionDesde, t.NumeracionHasta)
		}
	}
	return nil
}

func talonarioToResponse(t entity.Talonario) dto.TalonarioResponse {
	return dto.TalonarioResponse{
		ID:               t.ID,
		FormatoTipo:      t.FormatoTipo,
		Empresa:          t.Empresa,
		NumeracionDesde:  t.NumeracionDesde,
		NumeracionHasta:  t.NumeracionHasta,
		Cantidad:         t.Cantidad,
		FechaIngreso:     t.FechaIngreso,
		UbicacionAlmacen: t.UbicacionAlmacen,
		FechaSalida:      t.FechaSalida,
		UbicacionDestino: t.UbicacionDestino,
		Observaciones:    t.Observaciones,
		Estado:           t.Estado,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func talonariosToResponses(ts []entity.Talonario) []dto.TalonarioResponse {
	out := make([]dto.TalonarioResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, talonarioToResponse(t))
	}
	return out
}

func responsesToTalonarios(rs []dto.TalonarioResponse, empresa, tipo string) []entity.Talonario {
	out := make([]entity.Talonario, 0, len(rs))
	for _, r := range rs {
		estado := r.Estado
		if estado == "" {
			estado = entity.TalonarioDisponible
		}
		out = append(out, entity.Talonario{
			ID:               r.ID,
			FormatoTipo:      tipo,
			Empresa:          empresa,
			NumeracionDesde:  r.NumeracionDesde,
			NumeracionHasta:  r.NumeracionHasta,
			Cantidad:         r.NumeracionHasta - r.NumeracionDesde + 1,
			FechaIngreso:     r.FechaIngreso,
			UbicacionAlmacen: r.UbicacionAlmacen,
			FechaSalida:      r.FechaSalida,
			UbicacionDestino: r.UbicacionDestino,
			Observaciones:    r.Observaciones,
			Estado:           estado,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		})
	}
	return out
}
