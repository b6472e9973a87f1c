// Package texto normaliza cadenas con tildes y eñes para búsqueda y para
// claves de archivo por par (empresa, tipo de formato).
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quitarDiacriticos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalizar devuelve s en minúsculas y sin diacríticos ("Almacén" -> "almacen").
// Si la transformación falla se devuelve s en minúsculas tal cual.
func Normalizar(s string) string {
	out, _, err := transform.String(quitarDiacriticos, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Contiene informa si frase contiene q, ignorando mayúsculas y diacríticos.
func Contiene(frase, q string) bool {
	return strings.Contains(Normalizar(frase), Normalizar(q))
}

// Clave convierte un nombre libre en un identificador seguro para nombres de
// archivo y claves de colección: minúsculas, sin diacríticos y con todo lo que
// no sea [a-z0-9] reemplazado por '_'. Mismo esquema que los archivos
// talonarios_<empresa>_<tipo>.json del almacén de archivos.
func Clave(s string) string {
	n := Normalizar(s)
	var b strings.Builder
	b.Grow(len(n))
	for _, r := range n {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
