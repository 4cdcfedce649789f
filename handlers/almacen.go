package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ivanrmz/clinica-backend/models"
)

// Almacen es el contrato con la capa de persistencia. Las filas llegan como
// map columna→valor y los errores usan los centinelas del paquete database.
type Almacen interface {
	CredencialesUsuario(ctx context.Context, correo string) (map[string]any, error)
	Usuario(ctx context.Context, id int) (map[string]any, error)
	Usuarios(ctx context.Context, filtro models.FiltroUsuarios) ([]map[string]any, error)
	InsertarUsuario(ctx context.Context, u models.CamposUsuario, hash string) (map[string]any, error)
	ActualizarUsuario(ctx context.Context, id int, u models.CamposUsuario, hash *string) (map[string]any, error)
	CambiarEstadoUsuario(ctx context.Context, id int, activo bool) (map[string]any, error)
	GuardarSecretoTOTP(ctx context.Context, id int, secreto *string) error

	Medico(ctx context.Context, id int) (map[string]any, error)
	Medicos(ctx context.Context, activo *bool) ([]map[string]any, error)
	InsertarMedico(ctx context.Context, m models.CamposMedico) (map[string]any, error)
	ActualizarMedico(ctx context.Context, id int, m models.CamposMedico) (map[string]any, error)
	CambiarEstadoMedico(ctx context.Context, id int, activo bool) (map[string]any, error)

	InsertarConsulta(ctx context.Context, d models.DatosConsulta) (int, error)
	HistorialConsultas(ctx context.Context, filtro models.FiltroHistorial) ([]map[string]any, error)
	TieneFechaConsulta() bool
}

// Handler agrupa los manejadores de todos los endpoints.
type Handler struct {
	almacen Almacen
}

func Nuevo(almacen Almacen) *Handler {
	return &Handler{almacen: almacen}
}

// parsearCuerpo decodifica el cuerpo como mapa crudo; un cuerpo ausente o
// ilegible equivale a un mapa vacío, igual que un JSON sin los campos.
func parsearCuerpo(c *fiber.Ctx) map[string]any {
	datos := map[string]any{}
	if err := c.BodyParser(&datos); err != nil {
		return map[string]any{}
	}
	return datos
}

// identificadorRuta interpreta el parámetro :id; cero o negativo es inválido.
func identificadorRuta(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// enteroDeQuery aplica la lista de alias sobre los parámetros de la URL.
func enteroDeQuery(consulta map[string]string, alias []string) int {
	for _, clave := range alias {
		if valor, presente := consulta[clave]; presente {
			if n := comoEntero(valor); n > 0 {
				return n
			}
		}
	}
	return 0
}

// cadenaDeQuery devuelve la primera cadena normalizada entre los alias.
func cadenaDeQuery(consulta map[string]string, alias []string) *string {
	for _, clave := range alias {
		if valor, presente := consulta[clave]; presente {
			if normalizado := NormalizarCadena(valor); normalizado != nil {
				return normalizado
			}
		}
	}
	return nil
}

// campoCadena resuelve la semántica de actualización parcial: la clave
// presente se normaliza, la ausente conserva el valor almacenado.
func campoCadena(datos, actual map[string]any, clave string) *string {
	if valor, presente := datos[clave]; presente {
		return NormalizarCadena(valor)
	}
	if actual != nil {
		return comoTextoPtr(actual[clave])
	}
	return nil
}

// camposMedico normaliza la petición de médico; con actual nil se trata de un
// alta y el estado activo por omisión es verdadero.
func camposMedico(datos, actual map[string]any) models.CamposMedico {
	m := models.CamposMedico{
		PrimerNombre:    campoCadena(datos, actual, "primer_nombre"),
		SegundoNombre:   campoCadena(datos, actual, "segundo_nombre"),
		ApellidoPaterno: campoCadena(datos, actual, "apellido_paterno"),
		ApellidoMaterno: campoCadena(datos, actual, "apellido_materno"),
		Cedula:          campoCadena(datos, actual, "cedula"),
		Telefono:        campoCadena(datos, actual, "telefono"),
		Especialidad:    campoCadena(datos, actual, "especialidad"),
		Email:           campoCadena(datos, actual, "email"),
	}

	if valor, presente := datos["activo"]; presente {
		m.Activo = InterpretarBooleano(valor)
	} else if actual != nil {
		activo := comoBooleano(actual["activo"])
		m.Activo = &activo
	} else {
		activo := true
		m.Activo = &activo
	}

	return m
}

// camposUsuario normaliza la petición de cuenta. El password solo se toma
// cuando viene con contenido; la referencia a médico acepta sus alias y la
// clave presente pero vacía o nula la anula.
func camposUsuario(datos, actual map[string]any) models.CamposUsuario {
	u := models.CamposUsuario{
		Correo:         campoCadena(datos, actual, "correo"),
		NombreCompleto: campoCadena(datos, actual, "nombre_completo"),
	}

	if valor, presente := datos["password"]; presente {
		if texto := strings.TrimSpace(comoTexto(valor)); texto != "" {
			u.Password = &texto
		}
	}

	if actual != nil {
		u.IDMedico = comoEnteroPtr(actual["id_medico"])
	}
	for _, clave := range aliasMedico {
		if valor, presente := datos[clave]; presente {
			if valor == nil || strings.TrimSpace(comoTexto(valor)) == "" {
				u.IDMedico = nil
			} else {
				n := comoEntero(valor)
				u.IDMedico = &n
			}
			break
		}
	}
	if u.IDMedico != nil && *u.IDMedico <= 0 {
		u.IDMedico = nil
	}

	if valor, presente := datos["activo"]; presente {
		u.Activo = InterpretarBooleano(valor)
	} else if actual != nil {
		activo := comoBooleano(actual["activo"])
		u.Activo = &activo
	} else {
		activo := true
		u.Activo = &activo
	}

	return u
}

// datosConsulta coalesce los alias de /crear-consulta en su forma canónica.
func datosConsulta(datos map[string]any) models.DatosConsulta {
	d := models.DatosConsulta{
		IDMedico:        enteroConAlias(datos, aliasMedico),
		IDPaciente:      enteroConAlias(datos, aliasPaciente),
		Sintomas:        cadenaConAlias(datos, aliasSintomas),
		Recomendaciones: cadenaConAlias(datos, aliasRecomendaciones),
	}
	if valor, presente := datos["diagnostico"]; presente {
		d.Diagnostico = strings.TrimSpace(comoTexto(valor))
	}
	if valor, presente := datos["fecha"]; presente {
		d.Fecha = strings.TrimSpace(comoTexto(valor))
	}
	if valor, presente := datos["hora"]; presente {
		d.Hora = strings.TrimSpace(comoTexto(valor))
	}
	return d
}
