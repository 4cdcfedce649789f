package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/ivanrmz/clinica-backend/handlers"
	"github.com/ivanrmz/clinica-backend/middleware"
)

// Configurar registra el middleware global y todas las rutas del API.
func Configurar(app *fiber.App, h *handlers.Handler) {
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"estado":  true,
			"mensaje": "Servicio de clínica en línea",
		})
	})

	limiteAuth := middleware.CrearLimitador(middleware.LimiteAutenticacion)
	limiteGeneral := middleware.CrearLimitador(middleware.LimiteGeneral)
	autenticado := middleware.AutenticacionJWT()

	app.Post("/iniciar-sesion", limiteAuth, h.IniciarSesion)
	app.Get("/perfil", autenticado, h.Perfil)

	app.Post("/crear-consulta", limiteGeneral, h.CrearConsulta)
	app.Get("/historial-consultas", h.HistorialConsultas)

	app.Get("/medicos", h.ListarMedicos)
	app.Post("/medicos", limiteGeneral, h.CrearMedico)
	app.Put("/medicos/:id", limiteGeneral, h.ActualizarMedico)
	app.Patch("/medicos/:id/estado", limiteGeneral, h.CambiarEstadoMedico)

	app.Get("/usuarios", h.ListarUsuarios)
	app.Post("/usuarios", limiteGeneral, h.CrearUsuario)
	app.Put("/usuarios/:id", limiteGeneral, h.ActualizarUsuario)
	app.Patch("/usuarios/:id/estado", limiteGeneral, h.CambiarEstadoUsuario)

	app.Post("/usuarios/:id/totp", autenticado, h.ConfigurarTOTP)
	app.Delete("/usuarios/:id/totp", autenticado, h.DesactivarTOTP)
}
