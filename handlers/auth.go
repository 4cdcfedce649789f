package handlers

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/ivanrmz/clinica-backend/database"
	"github.com/ivanrmz/clinica-backend/middleware"
)

// El 401 de credenciales es deliberadamente pobre en información: el mismo
// mensaje para correo desconocido y para contraseña incorrecta.
const mensajeCredenciales = "Usuario y/o Contraseña incorrecta"

// IniciarSesion autentica por correo y contraseña y emite un token JWT. Si la
// cuenta tiene verificación en dos pasos configurada, exige además un campo
// "codigo" con un código TOTP vigente.
func (h *Handler) IniciarSesion(c *fiber.Ctx) error {
	datos := parsearCuerpo(c)
	correo := strings.TrimSpace(comoTexto(datos["correo"]))
	password := comoTexto(datos["password"])

	if correo == "" || strings.TrimSpace(password) == "" {
		return respuestaError(c, fiber.StatusBadRequest, "Correo y contraseña son obligatorios")
	}

	credenciales, err := h.almacen.CredencialesUsuario(c.Context(), correo)
	if err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusUnauthorized, mensajeCredenciales)
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al iniciar sesión.")
	}

	if !verificarPassword(password, comoTexto(credenciales["password"])) {
		return respuestaError(c, fiber.StatusUnauthorized, mensajeCredenciales)
	}

	if secreto := comoTextoPtr(credenciales["totp_secret"]); secreto != nil {
		codigo := strings.TrimSpace(comoTexto(datos["codigo"]))
		if codigo == "" || !totp.Validate(codigo, *secreto) {
			return respuestaError(c, fiber.StatusUnauthorized, "Código de verificación inválido")
		}
	}

	token, err := middleware.GenerarJWT(comoEntero(credenciales["id"]), correo)
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error al generar el token")
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Operacion exitosa",
		"token":   token,
	})
}

// verificarPassword acepta hashes bcrypt y, para registros heredados que aún
// guardan la contraseña en claro, una comparación en tiempo constante.
func verificarPassword(password, almacenado string) bool {
	if almacenado == "" {
		return false
	}
	if strings.HasPrefix(almacenado, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(almacenado), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(almacenado), []byte(password)) == 1
}

// Perfil devuelve la cuenta del usuario autenticado por el token.
func (h *Handler) Perfil(c *fiber.Ctx) error {
	id, _ := c.Locals("usuario_id").(int)
	if id <= 0 {
		return respuestaError(c, fiber.StatusUnauthorized, "Token inválido")
	}

	fila, err := h.almacen.Usuario(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El usuario indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al obtener el perfil.")
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Perfil obtenido correctamente.",
		"usuario": MapearUsuario(fila),
	})
}

// ConfigurarTOTP genera y guarda un secreto de verificación en dos pasos para
// la cuenta y devuelve la URL otpauth para darla de alta en la aplicación.
func (h *Handler) ConfigurarTOTP(c *fiber.Ctx) error {
	id, valido := identificadorRuta(c)
	if !valido {
		return respuestaError(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	fila, err := h.almacen.Usuario(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El usuario indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al configurar la verificación.")
	}

	clave, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "clinica-backend",
		AccountName: comoTexto(fila["correo"]),
	})
	if err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al configurar la verificación.")
	}

	secreto := clave.Secret()
	if err := h.almacen.GuardarSecretoTOTP(c.Context(), id, &secreto); err != nil {
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al configurar la verificación.")
	}

	return c.JSON(fiber.Map{
		"estado":      true,
		"mensaje":     "Verificación en dos pasos activada.",
		"otpauth_url": clave.URL(),
	})
}

// DesactivarTOTP limpia el secreto de la cuenta.
func (h *Handler) DesactivarTOTP(c *fiber.Ctx) error {
	id, valido := identificadorRuta(c)
	if !valido {
		return respuestaError(c, fiber.StatusBadRequest, "Identificador inválido.")
	}

	if err := h.almacen.GuardarSecretoTOTP(c.Context(), id, nil); err != nil {
		if errors.Is(err, database.ErrNoEncontrado) {
			return respuestaError(c, fiber.StatusNotFound, "El usuario indicado no existe.")
		}
		return respuestaError(c, fiber.StatusInternalServerError, "Error interno al configurar la verificación.")
	}

	return c.JSON(fiber.Map{
		"estado":  true,
		"mensaje": "Verificación en dos pasos desactivada.",
	})
}
