package jsonfile

import (
	"context"
	"fmt"

	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
	"github.com/sgv-soluciones/control-formatos/pkg/texto"
)

var _ repository.TalonarioRepository = (*TalonarioRepo)(nil)

// TalonarioRepo persiste el conjunto de talonarios de cada par en su propio
// archivo talonarios_<empresa>_<tipo>.json, igual que el almacén histórico.
type TalonarioRepo struct {
	store *Store
}

// NewTalonarioRepository construye el adaptador de persistencia para talonarios.
func NewTalonarioRepository(store *Store) *TalonarioRepo {
	return &TalonarioRepo{store: store}
}

func archivoTalonarios(empresa, tipo string) string {
	return fmt.Sprintf("talonarios_%s_%s.json", texto.Clave(empresa), texto.Clave(tipo))
}

// Cargar devuelve el conjunto guardado del par. Sin archivo, conjunto vacío.
func (r *TalonarioRepo) Cargar(ctx context.Context, empresa, tipo string) ([]entity.Talonario, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []talonarioRecord
	if err := r.store.leerJSON(archivoTalonarios(empresa, tipo), &records); err != nil {
		return nil, err
	}
	talonarios := make([]entity.Talonario, len(records))
	for i, rec := range records {
		talonarios[i] = talonarioAEntidad(rec)
	}
	return talonarios, nil
}

// Guardar reemplaza el conjunto completo del par.
func (r *TalonarioRepo) Guardar(ctx context.Context, empresa, tipo string, talonarios []entity.Talonario) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records := make([]talonarioRecord, len(talonarios))
	for i, t := range talonarios {
		records[i] = talonarioARecord(t)
	}
	return r.store.escribirJSON(archivoTalonarios(empresa, tipo), records)
}
