package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/ivanrmz/clinica-backend/database"
	"github.com/ivanrmz/clinica-backend/handlers"
	"github.com/ivanrmz/clinica-backend/middleware"
	"github.com/ivanrmz/clinica-backend/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Advertencia: no se pudo cargar el archivo .env")
	}

	middleware.ConfigurarClave(os.Getenv("JWT_SECRET"))

	pool := database.Conectar()
	defer pool.Close()

	almacen, err := database.NuevoAlmacen(context.Background(), pool)
	if err != nil {
		log.Fatalf("Error al preparar el almacén: %v", err)
	}
	if almacen.TieneFechaConsulta() {
		log.Println("Esquema de consulta con fecha_creacion disponible")
	} else {
		log.Println("Esquema de consulta sin fecha_creacion; el filtrado por fechas queda deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName: "Clinica API v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			codigo := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				codigo = e.Code
			}
			return c.Status(codigo).JSON(fiber.Map{
				"estado":  false,
				"mensaje": err.Error(),
			})
		},
	})

	routes.Configurar(app, handlers.Nuevo(almacen))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"estado":  false,
			"mensaje": "La ruta solicitada no existe en este servidor",
		})
	})

	puerto := os.Getenv("PORT")
	if puerto == "" {
		puerto = "3000"
	}

	log.Printf("Servidor de clínica iniciado en el puerto %s", puerto)
	log.Fatal(app.Listen(":" + puerto))
}
