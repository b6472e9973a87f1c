package jsonfile

import (
	"context"
	"fmt"
	"sort"

	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
	"github.com/sgv-soluciones/control-formatos/pkg/texto"
)

var _ repository.NumeracionRepository = (*NumeracionRepo)(nil)

// NumeracionRepo administra el fondo de numeraciones reservadas de cada par
// en su archivo <empresa>_<tipo>_numbers.json, heredado del almacén viejo.
// Con tx activo no toma el mutex del almacén: el TxRunner ya lo retiene. Los
// archivos del fondo no participan del clon de la transacción; un retiro
// dentro de una transacción que luego falla queda aplicado, igual que en el
// almacén viejo.
type NumeracionRepo struct {
	store *Store
	tx    bool
}

// NewNumeracionRepository construye el adaptador del fondo de reservas.
func NewNumeracionRepository(store *Store) *NumeracionRepo {
	return &NumeracionRepo{store: store}
}

func archivoNumeros(empresa, tipo string) string {
	return fmt.Sprintf("%s_%s_numbers.json", texto.Clave(empresa), texto.Clave(tipo))
}

// Reservados devuelve los números reservados del par, orden ascendente.
func (r *NumeracionRepo) Reservados(ctx context.Context, empresa, tipo string) ([]int, error) {
	if !r.tx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	numeros, err := r.cargar(empresa, tipo)
	if err != nil {
		return nil, err
	}
	sort.Ints(numeros)
	return numeros, nil
}

// Reservar agrega un número al fondo del par. Reservar dos veces el mismo
// número no es error.
func (r *NumeracionRepo) Reservar(ctx context.Context, empresa, tipo string, numeracion int) error {
	if !r.tx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	numeros, err := r.cargar(empresa, tipo)
	if err != nil {
		return err
	}
	for _, n := range numeros {
		if n == numeracion {
			return nil
		}
	}
	numeros = append(numeros, numeracion)
	sort.Ints(numeros)
	return r.store.escribirJSON(archivoNumeros(empresa, tipo), numeros)
}

// Retirar quita un número del fondo de reserva.
func (r *NumeracionRepo) Retirar(ctx context.Context, empresa, tipo string, numeracion int) error {
	if !r.tx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	numeros, err := r.cargar(empresa, tipo)
	if err != nil {
		return err
	}
	restantes := numeros[:0]
	for _, n := range numeros {
		if n != numeracion {
			restantes = append(restantes, n)
		}
	}
	if len(restantes) == len(numeros) {
		return nil
	}
	return r.store.escribirJSON(archivoNumeros(empresa, tipo), restantes)
}

func (r *NumeracionRepo) cargar(empresa, tipo string) ([]int, error) {
	var numeros []int
	if err := r.store.leerJSON(archivoNumeros(empresa, tipo), &numeros); err != nil {
		return nil, err
	}
	return numeros, nil
}
