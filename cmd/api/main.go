package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sgv-soluciones/control-formatos/internal/application/analytics"
	"github.com/sgv-soluciones/control-formatos/internal/application/formatos"
	"github.com/sgv-soluciones/control-formatos/internal/application/numeracion"
	"github.com/sgv-soluciones/control-formatos/internal/application/pedidos"
	"github.com/sgv-soluciones/control-formatos/internal/application/talonarios"
	"github.com/sgv-soluciones/control-formatos/internal/application/usecase"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
	"github.com/sgv-soluciones/control-formatos/internal/infrastructure/jsonfile"
	"github.com/sgv-soluciones/control-formatos/internal/infrastructure/postgres"
	httpRouter "github.com/sgv-soluciones/control-formatos/internal/interfaces/http"
	"github.com/sgv-soluciones/control-formatos/pkg/config"
	"github.com/sgv-soluciones/control-formatos/pkg/logger"
)

// repos agrupa los adaptadores de persistencia ya construidos; la capa de
// aplicación no sabe qué driver hay detrás.
type repos struct {
	empresas   repository.EmpresaRepository
	tipos      repository.TipoFormatoRepository
	pedidos    repository.PedidoRepository
	formatos   repository.FormatoRepository
	talonarios repository.TalonarioRepository
	numeracion repository.NumeracionRepository
	txRunner   pedidos.TxRunner
	cerrar     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Archivo: cfg.App.LogFile,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Almacen.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.Almacen.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de base de datos")
		}
		r = repos{
			empresas:   postgres.NewEmpresaRepository(pool),
			tipos:      postgres.NewTipoFormatoRepository(pool),
			pedidos:    postgres.NewPedidoRepository(pool),
			formatos:   postgres.NewFormatoRepository(pool),
			talonarios: postgres.NewTalonarioRepository(pool),
			numeracion: postgres.NewNumeracionRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			cerrar:     pool.Close,
		}
	case config.DriverArchivo:
		store, err := jsonfile.Open(cfg.Almacen.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir almacén de archivos")
		}
		r = repos{
			empresas:   jsonfile.NewEmpresaRepository(store),
			tipos:      jsonfile.NewTipoFormatoRepository(store),
			pedidos:    jsonfile.NewPedidoRepository(store),
			formatos:   jsonfile.NewFormatoRepository(store),
			talonarios: jsonfile.NewTalonarioRepository(store),
			numeracion: jsonfile.NewNumeracionRepository(store),
			txRunner:   jsonfile.NewTxRunner(store),
			cerrar:     func() { _ = store.Close() },
		}
	}
	defer r.cerrar()

	allocator := numeracion.NewAllocator(r.formatos, r.numeracion)
	crearPedidoUC := pedidos.NewCrearPedidoUseCase(r.txRunner, allocator)
	pedidoUC := pedidos.NewPedidoUseCase(r.pedidos, r.txRunner)
	formatoUC := formatos.NewFormatoUseCase(r.formatos)
	talonarioUC := talonarios.NewTalonarioUseCase(r.talonarios, r.formatos, r.pedidos)
	empresaUC := usecase.NewEmpresaUseCase(r.empresas)
	tipoFormatoUC := usecase.NewTipoFormatoUseCase(r.tipos, r.empresas)
	dashboardUC := analytics.NewDashboardUseCase(r.pedidos, r.formatos)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EmpresaUC:     empresaUC,
		TipoFormatoUC: tipoFormatoUC,
		CrearPedido:   crearPedidoUC,
		PedidoUC:      pedidoUC,
		FormatoUC:     formatoUC,
		TalonarioUC:   talonarioUC,
		DashboardUC:   dashboardUC,
		Allocator:     allocator,
	})

	// Apagado ordenado con SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("señal recibida, apagando")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
