// Package jsonfile implementa los puertos de persistencia sobre colecciones
// JSON en disco, compatible con el layout de datos histórico de la aplicación
// de escritorio (pedidos.json, formatos.json, empresas.json,
// tipos_formato.json y archivos por par para talonarios y reservas).
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// Archivos de las colecciones principales.
const (
	archivoEmpresas = "empresas.json"
	archivoTipos    = "tipos_formato.json"
	archivoPedidos  = "pedidos.json"
	archivoFormatos = "formatos.json"
)

// Store es el almacén de archivos JSON. Una sola instancia por proceso; el
// flock impide que dos procesos abran el mismo directorio de datos. Todas las
// escrituras pasan por mutar: se aplica sobre una copia y solo si la
// persistencia tiene éxito la copia reemplaza al estado en memoria.
type Store struct {
	dir  string
	lock *flock.Flock

	mu    sync.RWMutex
	datos *datos
}

// datos son las colecciones principales cargadas en memoria.
type datos struct {
	empresas []*entity.Empresa
	tipos    []*entity.TipoFormato
	pedidos  []*entity.Pedido
	formatos []*entity.Formato
}

// Open abre (o inicializa) el directorio de datos y toma el lock de proceso.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}

	lock := flock.New(filepath.Join(dir, ".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock del almacén: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: otro proceso tiene abierto el directorio de datos %s", domain.ErrAlmacen, dir)
	}

	s := &Store{dir: dir, lock: lock, datos: &datos{}}
	if err := s.cargar(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return s, nil
}

// Close libera el lock de proceso.
func (s *Store) Close() error {
	return s.lock.Unlock()
}

func (s *Store) cargar() error {
	var empresas []empresaRecord
	if err := s.leerJSON(archivoEmpresas, &empresas); err != nil {
		return err
	}
	var tipos []tipoFormatoRecord
	if err := s.leerJSON(archivoTipos, &tipos); err != nil {
		return err
	}
	var pedidos []pedidoRecord
	if err := s.leerJSON(archivoPedidos, &pedidos); err != nil {
		return err
	}
	var formatos []formatoRecord
	if err := s.leerJSON(archivoFormatos, &formatos); err != nil {
		return err
	}

	s.datos = &datos{
		empresas: empresasAEntidades(empresas),
		tipos:    tiposAEntidades(tipos),
		pedidos:  pedidosAEntidades(pedidos),
		formatos: formatosAEntidades(formatos),
	}
	return nil
}

// leer ejecuta fn con acceso de solo lectura al estado en memoria.
func (s *Store) leer(fn func(d *datos)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.datos)
}

// mutar aplica fn sobre una copia del estado, persiste los archivos indicados
// y, solo si todo tuvo éxito, adopta la copia. Un fallo de disco deja el
// estado en memoria y los archivos previos intactos.
func (s *Store) mutar(fn func(d *datos) error, archivos ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clon := s.datos.clonar()
	if err := fn(clon); err != nil {
		return err
	}
	if err := s.persistir(clon, archivos...); err != nil {
		return err
	}
	s.datos = clon
	return nil
}

func (s *Store) persistir(d *datos, archivos ...string) error {
	for _, a := range archivos {
		var v any
		switch a {
		case archivoEmpresas:
			v = empresasARecords(d.empresas)
		case archivoTipos:
			v = tiposARecords(d.tipos)
		case archivoPedidos:
			v = pedidosARecords(d.pedidos)
		case archivoFormatos:
			v = formatosARecords(d.formatos)
		default:
			return fmt.Errorf("colección desconocida: %s", a)
		}
		if err := s.escribirJSON(a, v); err != nil {
			return err
		}
	}
	return nil
}

// leerJSON decodifica un archivo de colección. Un archivo inexistente es una
// colección vacía, no un error.
func (s *Store) leerJSON(nombre string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, nombre))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: leer %s: %v", domain.ErrAlmacen, nombre, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decodificar %s: %v", domain.ErrAlmacen, nombre, err)
	}
	return nil
}

// escribirJSON escribe de forma atómica: archivo temporal en el mismo
// directorio y rename sobre el destino.
func (s *Store) escribirJSON(nombre string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: codificar %s: %v", domain.ErrAlmacen, nombre, err)
	}

	destino := filepath.Join(s.dir, nombre)
	tmp, err := os.CreateTemp(s.dir, nombre+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: crear temporal para %s: %v", domain.ErrAlmacen, nombre, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: escribir %s: %v", domain.ErrAlmacen, nombre, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: cerrar temporal de %s: %v", domain.ErrAlmacen, nombre, err)
	}
	if err := os.Rename(tmp.Name(), destino); err != nil {
		return fmt.Errorf("%w: reemplazar %s: %v", domain.ErrAlmacen, nombre, err)
	}
	return nil
}

func (d *datos) clonar() *datos {
	c := &datos{
		empresas: make([]*entity.Empresa, len(d.empresas)),
		tipos:    make([]*entity.TipoFormato, len(d.tipos)),
		pedidos:  make([]*entity.Pedido, len(d.pedidos)),
		formatos: make([]*entity.Formato, len(d.formatos)),
	}
	for i, e := range d.empresas {
		v := *e
		c.empresas[i] = &v
	}
	for i, t := range d.tipos {
		v := *t
		c.tipos[i] = &v
	}
	for i, p := range d.pedidos {
		v := *p
		c.pedidos[i] = &v
	}
	for i, f := range d.formatos {
		v := *f
		c.formatos[i] = &v
	}
	return c
}
