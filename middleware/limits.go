package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// ConfiguracionLimite describe una política de rate limiting por IP.
type ConfiguracionLimite struct {
	Maximo  int
	Ventana time.Duration
	Mensaje string
}

// LimiteGeneral aplica a los endpoints de lectura y escritura normales.
var LimiteGeneral = ConfiguracionLimite{
	Maximo:  100,
	Ventana: 15 * time.Minute,
	Mensaje: "Demasiadas peticiones, intenta más tarde",
}

// LimiteAutenticacion es más estricto para el inicio de sesión.
var LimiteAutenticacion = ConfiguracionLimite{
	Maximo:  20,
	Ventana: 30 * time.Minute,
	Mensaje: "Demasiados intentos de inicio de sesión, intenta más tarde",
}

// CrearLimitador construye el middleware limitador para una política.
func CrearLimitador(config ConfiguracionLimite) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.Maximo,
		Expiration: config.Ventana,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"estado":  false,
				"mensaje": config.Mensaje,
			})
		},
	})
}
