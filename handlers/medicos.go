package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ivanrmz/clinica-backend/database"
	"github.com/ivanrmz/clinica-backend/models"
)

// ListarMedicos devuelve el listado, con filtro opcional ?activo=. Un valor
// de filtro irreconocible se ignora en lugar de fallar.
func (h *Handler) ListarMedicos(c *fiber.Ctx) error {
	var filtroActivo *bool
	if valor, presente := c.Queries()["activo"]; presente {
		filtroActivo = InterpretarBooleano(valor)
	}

	filas, err := h.almacen.Medicos(c.Context(), filtroActivo)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al listar los médicos.")
	}

	medicos := make([]models.Medico, 0, len(filas))
	for _, fila := range filas {
		medicos = append(medicos, MapearMedico(fila))
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Listado de médicos obtenido correctamente.",
		"medicos": medicos,
	})
}

// CrearMedico registra un médico nuevo.
func (h *Handler) CrearMedico(c *fiber.Ctx) error {
	campos := camposMedico(parsearCuerpo(c), nil)

	if errores := validarMedico(campos); len(errores) > 0 {
		return respuestaErrores(c, fiber.StatusBadRequest, "Datos inválidos.", errores)
	}

	fila, err := h.almacen.InsertarMedico(c.Context(), campos)
	if err != nil {
		var duplicado *database.ErrDuplicado
		if errors.As(err, &duplicado) {
			return respuestaErrores(c, fiber.StatusConflict, "No fue posible crear el médico.", duplicado.Campos)
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al crear el médico.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Médico creado correctamente.",
		"medico":  MapearMedico(fila),
	})
}

// ActualizarMedico aplica una actualización parcial: los campos ausentes del
// cuerpo conservan el valor almacenado.
func (h *Handler) ActualizarMedico(c *fiber.Ctx) error {
	id, valido := identificadorRuta(c)
	if !valido {
		return respuestaError(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	actual, err := h.almacen.Medico(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El médico indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el médico.")
	}

	campos := camposMedico(parsearCuerpo(c), actual)

	if errores := validarMedico(campos); len(errores) > 0 {
		return respuestaErrores(c, fiber.StatusBadRequest, "Datos inválidos.", errores)
	}

	fila, err := h.almacen.ActualizarMedico(c.Context(), id, campos)
	if err != nil {
		var duplicado *database.ErrDuplicado
		if errors.As(err, &duplicado) {
			return respuestaErrores(c, fiber.StatusConflict, "No fue posible actualizar el médico.", duplicado.Campos)
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el médico.")
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Médico actualizado correctamente.",
		"medico":  MapearMedico(fila),
	})
}

// CambiarEstadoMedico activa o desactiva un médico (baja lógica).
func (h *Handler) CambiarEstadoMedico(c *fiber.Ctx) error {
	id, valido := identificadorRuta(c)
	if !valido {
		return respuestaError(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	datos := parsearCuerpo(c)
	valor, presente := datos["activo"]
	if !presente {
		return respuestaError(c, fiber.StatusBadRequest, "Debe indicar el estado activo.")
	}

	activo := InterpretarBooleano(valor)
	if activo == nil {
		return respuestaError(c, fiber.StatusBadRequest, "El estado activo es inválido.")
	}

	if _, err := h.almacen.Medico(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El médico indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el médico.")
	}

	fila, err := h.almacen.CambiarEstadoMedico(c.Context(), id, *activo)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el médico.")
	}

	mensaje := "Médico desactivado correctamente."
	if *activo {
		mensaje = "Médico activado correctamente."
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": mensaje,
		"medico":  MapearMedico(fila),
	})
}
