package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Clave de firma; en producción main la reemplaza con JWT_SECRET.
var claveJWT = []byte("clave_de_desarrollo")

// ConfigurarClave fija la clave de firma desde la configuración. Una cadena
// vacía conserva la clave de desarrollo.
func ConfigurarClave(secreto string) {
	if secreto != "" {
		claveJWT = []byte(secreto)
	}
}

// Claims son los datos que viajan dentro del token.
type Claims struct {
	UsuarioID int    `json:"usuario_id"`
	Correo    string `json:"correo"`
	jwt.RegisteredClaims
}

// GenerarJWT emite un token HS256 con 24 horas de vigencia.
func GenerarJWT(usuarioID int, correo string) (string, error) {
	claims := Claims{
		UsuarioID: usuarioID,
		Correo:    correo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(claveJWT)
}

// AutenticacionJWT valida el encabezado Authorization y deja el usuario en el
// contexto de la petición.
func AutenticacionJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		encabezado := c.Get("Authorization")
		if encabezado == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"estado":  false,
				"mensaje": "Token de autorización requerido",
			})
		}

		tokenCrudo := strings.TrimPrefix(encabezado, "Bearer ")
		if tokenCrudo == encabezado {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"estado":  false,
				"mensaje": "Formato de token inválido",
			})
		}

		token, err := jwt.ParseWithClaims(tokenCrudo, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return claveJWT, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"estado":  false,
				"mensaje": "Token inválido",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"estado":  false,
				"mensaje": "Token inválido",
			})
		}

		c.Locals("usuario_id", claims.UsuarioID)
		c.Locals("correo", claims.Correo)

		return c.Next()
	}
}
