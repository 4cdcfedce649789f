package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/ivanrmz/clinica-backend/database"
	"github.com/ivanrmz/clinica-backend/models"
)

// ListarUsuarios devuelve las cuentas con filtros opcionales ?activo= y
// ?id_medico=/?medicoId=.
func (h *Handler) ListarUsuarios(c *fiber.Ctx) error {
	consulta := c.Queries()

	var filtro models.FiltroUsuarios
	if valor, presente := consulta["activo"]; presente {
		filtro.Activo = InterpretarBooleano(valor)
	}
	filtro.IDMedico = enteroDeQuery(consulta, aliasMedico)

	filas, err := h.almacen.Usuarios(c.Context(), filtro)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al listar los usuarios.")
	}

	usuarios := make([]models.Usuario, 0, len(filas))
	for _, fila := range filas {
		usuarios = append(usuarios, MapearUsuario(fila))
	}

	return c.JSON(fiber.Map{
		"estado":   true,
		"mensaje":  "Listado de usuarios obtenido correctamente.",
		"usuarios": usuarios,
	})
}

// CrearUsuario registra una cuenta; la contraseña se guarda solo como hash
// bcrypt y la referencia a médico, cuando viene, debe existir.
func (h *Handler) CrearUsuario(c *fiber.Ctx) error {
	campos := camposUsuario(parsearCuerpo(c), nil)

	errores := validarUsuario(campos, true)
	if err := h.verificarMedicoAsociado(c, campos, errores); err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al validar el médico asociado.")
	}
	if len(errores) > 0 {
		return respuestaErrores(c, fiber.StatusBadRequest, "Datos inválidos.", errores)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*campos.Password), bcrypt.DefaultCost)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error al procesar la contraseña.")
	}

	fila, err := h.almacen.InsertarUsuario(c.Context(), campos, string(hash))
	if err != nil {
		var duplicado *database.ErrDuplicado
		if errors.As(err, &duplicado) {
			return respuestaErrores(c, fiber.StatusConflict, "El correo electrónico ya está registrado.", duplicado.Campos)
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al crear el usuario.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Usuario creado correctamente.",
		"usuario": MapearUsuario(fila),
	})
}

// ActualizarUsuario aplica una actualización parcial; una contraseña ausente
// o en blanco conserva el hash almacenado.
func (h *Handler) ActualizarUsuario(c *fiber.Ctx) error {
	id, valido := identificadorRuta(c)
	if !valido {
		return respuestaError(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	actual, err := h.almacen.Usuario(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El usuario indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el usuario.")
	}

	campos := camposUsuario(parsearCuerpo(c), actual)

	errores := validarUsuario(campos, false)
	if err := h.verificarMedicoAsociado(c, campos, errores); err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al validar el médico asociado.")
	}
	if len(errores) > 0 {
		return respuestaErrores(c, fiber.StatusBadRequest, "Datos inválidos.", errores)
	}

	var hash *string
	if campos.Password != nil {
		generado, err := bcrypt.GenerateFromPassword([]byte(*campos.Password), bcrypt.DefaultCost)
		if err != nil {
			return respuestaError(c, fiber.StatusInternalServerError, "Error al procesar la contraseña.")
		}
		texto := string(generado)
		hash = &texto
	}

	fila, err := h.almacen.ActualizarUsuario(c.Context(), id, campos, hash)
	if err != nil {
		var duplicado *database.ErrDuplicado
		if errors.As(err, &duplicado) {
			return respuestaErrores(c, fiber.StatusConflict, "El correo electrónico ya está registrado.", duplicado.Campos)
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el usuario.")
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Usuario actualizado correctamente.",
		"usuario": MapearUsuario(fila),
	})
}

// CambiarEstadoUsuario activa o desactiva una cuenta (baja lógica).
func (h *Handler) CambiarEstadoUsuario(c *fiber.Ctx) error {
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

	if _, err := h.almacen.Usuario(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El usuario indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el usuario.")
	}

	fila, err := h.almacen.CambiarEstadoUsuario(c.Context(), id, *activo)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al actualizar el usuario.")
	}

	mensaje := "Usuario desactivado correctamente."
	if *activo {
		mensaje = "Usuario activado correctamente."
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": mensaje,
		"usuario": MapearUsuario(fila),
	})
}

// verificarMedicoAsociado agrega a errores la falla de referencia cuando la
// cuenta apunta a un médico inexistente. Un fallo del almacenamiento distinto
// de "no existe" se devuelve tal cual para que el manejador lo convierta en
// 500 y no siga escribiendo.
func (h *Handler) verificarMedicoAsociado(c *fiber.Ctx, campos models.CamposUsuario, errores map[string]string) error {
	if campos.IDMedico == nil {
		return nil
	}
	if _, err := h.almacen.Medico(c.Context(), *campos.IDMedico); err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			errores["id_medico"] = "El médico asociado no existe."
			return nil
		}
		return err
	}
	return nil
}
