package jsonfile

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/application/pedidos"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ pedidos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks atómicos sobre el almacén de archivos: clona el
// estado en memoria, aplica fn sobre el clon y solo si fn y la escritura de
// los archivos afectados tienen éxito el clon reemplaza al estado. Un fallo a
// mitad de camino no deja cambios parciales visibles.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén de archivos.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run aplica fn con repos atados al clon de la transacción. El mutex del
// almacén se retiene durante todo el callback: las transacciones del driver
// de archivos se ejecutan estrictamente en serie.
func (r *TxRunner) Run(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	formatoRepo repository.FormatoRepository,
	reservaRepo repository.NumeracionRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	clon := s.datos.clonar()
	pedidoRepo := &PedidoRepo{store: s, tx: clon}
	formatoRepo := &FormatoRepo{store: s, tx: clon}
	reservaRepo := &NumeracionRepo{store: s, tx: true}

	if err := fn(pedidoRepo, formatoRepo, reservaRepo); err != nil {
		return err
	}
	if err := s.persistir(clon, archivoPedidos, archivoFormatos); err != nil {
		return err
	}
	s.datos = clon
	return nil
}
