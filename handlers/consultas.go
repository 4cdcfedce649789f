package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ivanrmz/clinica-backend/database"
	"github.com/ivanrmz/clinica-backend/models"
)

// CrearConsulta registra una consulta médica. Las verificaciones de
// existencia y la escritura corren en una sola transacción del almacén: una
// referencia faltante revierte todo antes de persistir.
func (h *Handler) CrearConsulta(c *fiber.Ctx) error {
	datos := datosConsulta(parsearCuerpo(c))

	if errores := validarConsulta(datos); len(errores) > 0 {
		return respuestaErrores(c, fiber.StatusBadRequest, "Datos inválidos.", errores)
	}

	datos.Diagnostico = sintetizarDiagnostico(datos)

	id, err := h.almacen.InsertarConsulta(c.Context(), datos)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrMedicoNoExiste):
			return respuestaError(c, fiber.StatusNotFound, "El médico seleccionado no existe.")
		case errors.Is(err, database.ErrPacienteNoExiste):
			return respuestaError(c, fiber.StatusNotFound, "El paciente seleccionado no existe.")
		default:
			return respuestaError(c, fiber.StatusInternalServerError, "No fue posible registrar la consulta.")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"estado":     true,
		"mensaje":    "Consulta registrada correctamente.",
		"idConsulta": id,
	})
}

// HistorialConsultas lista las consultas con filtros opcionales de médico,
// paciente y rango de fechas. Pedir un filtro de fechas contra un esquema sin
// fecha_creacion es un error, no un filtro silenciosamente ignorado.
func (h *Handler) HistorialConsultas(c *fiber.Ctx) error {
	consulta := c.Queries()

	filtro := models.FiltroHistorial{
		IDMedico:    enteroDeQuery(consulta, aliasMedico),
		IDPaciente:  enteroDeQuery(consulta, aliasPaciente),
		FechaInicio: cadenaDeQuery(consulta, aliasFechaInicio),
		FechaFin:    cadenaDeQuery(consulta, aliasFechaFin),
	}

	if errores := validarFiltrosFecha(filtro.FechaInicio, filtro.FechaFin); len(errores) > 0 {
		return respuestaErrores(c, fiber.StatusBadRequest, "Parámetros inválidos.", errores)
	}

	if (filtro.FechaInicio != nil || filtro.FechaFin != nil) && !h.almacen.TieneFechaConsulta() {
		return respuestaError(c, fiber.StatusBadRequest, "El filtrado por fechas no está disponible en la tabla consulta.")
	}

	filas, err := h.almacen.HistorialConsultas(c.Context(), filtro)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al obtener el historial.")
	}

	consultas := make([]models.Consulta, 0, len(filas))
	for _, fila := range filas {
		consultas = append(consultas, MapearConsulta(fila, h.almacen.TieneFechaConsulta()))
	}

	return c.JSON(fiber.Map{
		"estado":    true,
		"mensaje":   "Historial de consultas obtenido correctamente.",
		"consultas": consultas,
	})
}
