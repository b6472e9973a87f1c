package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgv-soluciones/control-formatos/internal/application/analytics"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/formatos"
	"github.com/sgv-soluciones/control-formatos/internal/application/numeracion"
	"github.com/sgv-soluciones/control-formatos/internal/application/pedidos"
	"github.com/sgv-soluciones/control-formatos/internal/application/talonarios"
	"github.com/sgv-soluciones/control-formatos/internal/application/usecase"
	"github.com/sgv-soluciones/control-formatos/internal/infrastructure/jsonfile"
	apphttp "github.com/sgv-soluciones/control-formatos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp levanta la API completa sobre el driver de archivos en un
// directorio temporal, el mismo cableado que hace main con ALMACEN_DRIVER=archivo.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := jsonfile.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	formatoRepo := jsonfile.NewFormatoRepository(store)
	pedidoRepo := jsonfile.NewPedidoRepository(store)
	talonarioRepo := jsonfile.NewTalonarioRepository(store)
	numeracionRepo := jsonfile.NewNumeracionRepository(store)
	txRunner := jsonfile.NewTxRunner(store)

	allocator := numeracion.NewAllocator(formatoRepo, numeracionRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		EmpresaUC:     usecase.NewEmpresaUseCase(jsonfile.NewEmpresaRepository(store)),
		TipoFormatoUC: usecase.NewTipoFormatoUseCase(jsonfile.NewTipoFormatoRepository(store), jsonfile.NewEmpresaRepository(store)),
		CrearPedido:   pedidos.NewCrearPedidoUseCase(txRunner, allocator),
		PedidoUC:      pedidos.NewPedidoUseCase(pedidoRepo, txRunner),
		FormatoUC:     formatos.NewFormatoUseCase(formatoRepo),
		TalonarioUC:   talonarios.NewTalonarioUseCase(talonarioRepo, formatoRepo, pedidoRepo),
		DashboardUC:   analytics.NewDashboardUseCase(pedidoRepo, formatoRepo),
		Allocator:     allocator,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodificar[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// crearPedido registra un pedido recogido del par de prueba y devuelve la
// respuesta decodificada.
func crearPedido(t *testing.T, app *fiber.App, inicial, cantidad int) dto.PedidoResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", dto.CreatePedidoRequest{
		Fecha:             "2026-02-01",
		Formato:           "Guía de Remisión",
		Empresa:           "Transportes Andinos",
		Cantidad:          cantidad,
		NumeracionInicial: inicial,
		Estado:            "recogido",
		FechaRecojo:       "2026-02-05",
		Monto:             decimal.NewFromInt(250),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodificar[dto.PedidoResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresas y tipos de formato
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EmpresaCRUD(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/empresas/", dto.CreateEmpresaRequest{
		Nombre: "Transportes Andinos", RUC: "20123456789",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	creada := decodificar[dto.EmpresaResponse](t, resp)
	assert.NotEmpty(t, creada.ID)
	assert.True(t, creada.Activa, "una empresa nueva nace activa")

	resp = doJSON(t, app, http.MethodPost, "/api/empresas/", dto.CreateEmpresaRequest{Nombre: "transportes andinos"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "el nombre duplicado responde 409")
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/empresas/"+creada.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	leida := decodificar[dto.EmpresaResponse](t, resp)
	assert.Equal(t, "Transportes Andinos", leida.Nombre)

	resp = doJSON(t, app, http.MethodGet, "/api/empresas/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_EmpresaSinNombreEs400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/empresas/", dto.CreateEmpresaRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_TiposDeFormatoPorEmpresa(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/empresas/", dto.CreateEmpresaRequest{Nombre: "Andinos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	empresa := decodificar[dto.EmpresaResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/tipos-formato/", dto.CreateTipoFormatoRequest{
		Nombre: "Guía de Remisión", EmpresaID: empresa.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/empresas/"+empresa.ID+"/tipos-formato", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tipos := decodificar[[]dto.TipoFormatoResponse](t, resp)
	require.Len(t, tipos, 1)
	assert.Equal(t, "Guía de Remisión", tipos[0].Nombre)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearPedidoMaterializaFormatos(t *testing.T) {
	app := buildTestApp(t)

	pedido := crearPedido(t, app, 1, 5)
	assert.Equal(t, 5, pedido.NumeracionFinal)

	resp := doJSON(t, app, http.MethodGet, "/api/formatos/?pedido_id="+pedido.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hojas := decodificar[[]dto.FormatoResponse](t, resp)
	require.Len(t, hojas, 5, "una hoja por unidad del pedido")
	assert.Equal(t, 1, hojas[0].Numeracion)
	assert.Equal(t, "disponible", hojas[0].Estado)
}

func TestAPI_NumeracionOcupadaRespondeConflicto(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 5)

	resp := doJSON(t, app, http.MethodPost, "/api/pedidos/", dto.CreatePedidoRequest{
		Fecha: "2026-02-02", Formato: "Guía de Remisión", Empresa: "Transportes Andinos",
		Cantidad: 3, NumeracionInicial: 4, Estado: "por recoger",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	cuerpo := decodificar[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INTEGRIDAD", cuerpo.Code)

	// El pedido rechazado no debe figurar en el listado.
	resp = doJSON(t, app, http.MethodGet, "/api/pedidos/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lista := decodificar[[]dto.PedidoResponse](t, resp)
	assert.Len(t, lista, 1)
}

func TestAPI_SiguienteNumeracion(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 50)

	resp := doJSON(t, app, http.MethodGet,
		"/api/pedidos/siguiente-numeracion?empresa=Transportes+Andinos&formato=Gu%C3%ADa+de+Remisi%C3%B3n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sig := decodificar[dto.NumeracionResponse](t, resp)
	assert.Equal(t, 51, sig.Numeracion)
}

func TestAPI_EliminarPedidoLiberaSuNumeracion(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 10)
	segundo := crearPedido(t, app, 11, 10)

	resp := doJSON(t, app, http.MethodDelete, "/api/pedidos/"+segundo.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// La cascada borra también las hojas del pedido eliminado.
	resp = doJSON(t, app, http.MethodGet, "/api/formatos/?pedido_id="+segundo.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hojas := decodificar[[]dto.FormatoResponse](t, resp)
	assert.Empty(t, hojas, "las hojas del pedido eliminado no deben sobrevivir")

	// El rango liberado vuelve a ofrecerse como siguiente numeración.
	resp = doJSON(t, app, http.MethodGet,
		"/api/pedidos/siguiente-numeracion?empresa=Transportes+Andinos&formato=Gu%C3%ADa+de+Remisi%C3%B3n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sig := decodificar[dto.NumeracionResponse](t, resp)
	assert.Equal(t, 11, sig.Numeracion, "tras eliminar 11-20 el par continúa en 11")
}

func TestAPI_BuscarPedidosSinTildes(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/pedidos/?q=guia", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lista := decodificar[[]dto.PedidoResponse](t, resp)
	assert.Len(t, lista, 1, "la búsqueda ignora tildes")
}

func TestAPI_ReporteCSV(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/pedidos/reporte.csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_pedidos.csv")

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Transportes Andinos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Talonarios: partición, guardado y despacho vía API
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDeTalonarios(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 100)

	// Generar la vista: 100 hojas a 50 por talonario → 2 propuestos.
	resp := doJSON(t, app, http.MethodPost, "/api/talonarios/generar", dto.GenerarTalonariosRequest{
		Empresa: "Transportes Andinos", Formato: "Guía de Remisión", Tamanio: 50,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	particion := decodificar[dto.ParticionResponse](t, resp)
	require.Len(t, particion.Talonarios, 2)
	assert.Equal(t, 1, particion.Talonarios[0].NumeracionDesde)
	assert.Equal(t, 50, particion.Talonarios[0].NumeracionHasta)

	// La vista propuesta no persiste hasta guardar.
	resp = doJSON(t, app, http.MethodGet,
		"/api/talonarios/?empresa=Transportes+Andinos&formato=Gu%C3%ADa+de+Remisi%C3%B3n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	guardados := decodificar[[]dto.TalonarioResponse](t, resp)
	assert.Empty(t, guardados)

	resp = doJSON(t, app, http.MethodPost, "/api/talonarios/guardar", dto.GuardarTalonariosRequest{
		Empresa: "Transportes Andinos", Formato: "Guía de Remisión", Talonarios: particion.Talonarios,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet,
		"/api/talonarios/?empresa=Transportes+Andinos&formato=Gu%C3%ADa+de+Remisi%C3%B3n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	guardados = decodificar[[]dto.TalonarioResponse](t, resp)
	require.Len(t, guardados, 2)

	// Despachar el primero.
	despachado := guardados[0].ID
	resp = doJSON(t, app, http.MethodPost, "/api/talonarios/enviar", dto.EnviarTalonariosRequest{
		Empresa: "Transportes Andinos", Formato: "Guía de Remisión",
		IDs: []string{despachado}, FechaSalida: "2026-03-01", UbicacionDestino: "Sucursal Norte",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	enviados := decodificar[dto.EnviarTalonariosResponse](t, resp)
	assert.Equal(t, 1, enviados.Enviados)

	resp = doJSON(t, app, http.MethodGet,
		"/api/talonarios/?empresa=Transportes+Andinos&formato=Gu%C3%ADa+de+Remisi%C3%B3n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	guardados = decodificar[[]dto.TalonarioResponse](t, resp)
	porID := map[string]dto.TalonarioResponse{}
	for _, g := range guardados {
		porID[g.ID] = g
	}
	assert.Equal(t, "enviado", porID[despachado].Estado)
}

func TestAPI_TalonariosSinParEs400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/talonarios/", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_DashboardCuentaPedidosYFormatos(t *testing.T) {
	app := buildTestApp(t)

	crearPedido(t, app, 1, 10)

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resumen := decodificar[dto.DashboardResponse](t, resp)
	assert.Equal(t, 1, resumen.TotalPedidos)
	assert.Equal(t, 1, resumen.PedidosRecogidos)
	assert.Equal(t, 10, resumen.FormatosDisponibles)
}

