package handlers

import "github.com/gofiber/fiber/v2"

// Toda respuesta usa el sobre {estado, mensaje, errores?, <payload>...}.

func respuestaError(c *fiber.Ctx, codigo int, mensaje string) error {
	return c.Status(codigo).JSON(fiber.Map{
		"estado":  false,
		"mensaje": mensaje,
	})
}

func respuestaErrores(c *fiber.Ctx, codigo int, mensaje string, errores map[string]string) error {
	return c.Status(codigo).JSON(fiber.Map{
		"estado":  false,
		"mensaje": mensaje,
		"errores": errores,
	})
}
