package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/analytics"
	"github.com/sgv-soluciones/control-formatos/internal/application/formatos"
	"github.com/sgv-soluciones/control-formatos/internal/application/numeracion"
	"github.com/sgv-soluciones/control-formatos/internal/application/pedidos"
	"github.com/sgv-soluciones/control-formatos/internal/application/talonarios"
	"github.com/sgv-soluciones/control-formatos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EmpresaUC     *usecase.EmpresaUseCase
	TipoFormatoUC *usecase.TipoFormatoUseCase
	CrearPedido   *pedidos.CrearPedidoUseCase
	PedidoUC      *pedidos.PedidoUseCase
	FormatoUC     *formatos.FormatoUseCase
	TalonarioUC   *talonarios.TalonarioUseCase
	DashboardUC   *analytics.DashboardUseCase
	Allocator     *numeracion.Allocator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Empresas
	empresas := api.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC, deps.TipoFormatoUC)
	empresas.Post("/", empresaHandler.Create)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/:id", empresaHandler.GetByID)
	empresas.Put("/:id", empresaHandler.Update)
	empresas.Delete("/:id", empresaHandler.Delete)
	empresas.Get("/:id/tipos-formato", empresaHandler.Tipos)

	// Tipos de formato
	tipos := api.Group("/tipos-formato")
	tipoHandler := NewTipoFormatoHandler(deps.TipoFormatoUC)
	tipos.Post("/", tipoHandler.Create)
	tipos.Get("/", tipoHandler.List)
	tipos.Get("/:id", tipoHandler.GetByID)
	tipos.Put("/:id", tipoHandler.Update)
	tipos.Delete("/:id", tipoHandler.Delete)

	// Pedidos
	pedidosGroup := api.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.CrearPedido, deps.PedidoUC, deps.Allocator)
	pedidosGroup.Post("/", pedidoHandler.Create)
	pedidosGroup.Get("/", pedidoHandler.List)
	pedidosGroup.Get("/siguiente-numeracion", pedidoHandler.SiguienteNumeracion)
	pedidosGroup.Get("/reporte.csv", pedidoHandler.ExportarCSV)
	pedidosGroup.Get("/:id", pedidoHandler.GetByID)
	pedidosGroup.Put("/:id", pedidoHandler.Update)
	pedidosGroup.Delete("/:id", pedidoHandler.Delete)

	// Formatos individuales
	formatosGroup := api.Group("/formatos")
	formatoHandler := NewFormatoHandler(deps.FormatoUC)
	formatosGroup.Get("/", formatoHandler.List)
	formatosGroup.Get("/:id", formatoHandler.GetByID)
	formatosGroup.Put("/:id", formatoHandler.Update)

	// Talonarios (gestión por par empresa/formato)
	talonariosGroup := api.Group("/talonarios")
	talonarioHandler := NewTalonarioHandler(deps.TalonarioUC)
	talonariosGroup.Get("/", talonarioHandler.Cargar)
	talonariosGroup.Post("/generar", talonarioHandler.Generar)
	talonariosGroup.Post("/incorporar-nuevos", talonarioHandler.IncorporarNuevos)
	talonariosGroup.Post("/guardar", talonarioHandler.Guardar)
	talonariosGroup.Post("/redimensionar", talonarioHandler.Redimensionar)
	talonariosGroup.Post("/enviar", talonarioHandler.Enviar)
	talonariosGroup.Put("/:id", talonarioHandler.Actualizar)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Resumen)
}
