package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ivanrmz/clinica-backend/models"
)

// Verificación en compilación de que el falso cumple el contrato.
var _ Almacen = (*almacenFalso)(nil)

var errSinImplementar = errors.New("operación sin implementar en el almacén falso")

// almacenFalso implementa Almacen con funciones intercambiables por prueba.
type almacenFalso struct {
	CredencialesUsuarioFn  func(ctx context.Context, correo string) (map[string]any, error)
	UsuarioFn              func(ctx context.Context, id int) (map[string]any, error)
	UsuariosFn             func(ctx context.Context, filtro models.FiltroUsuarios) ([]map[string]any, error)
	InsertarUsuarioFn      func(ctx context.Context, u models.CamposUsuario, hash string) (map[string]any, error)
	ActualizarUsuarioFn    func(ctx context.Context, id int, u models.CamposUsuario, hash *string) (map[string]any, error)
	CambiarEstadoUsuarioFn func(ctx context.Context, id int, activo bool) (map[string]any, error)
	GuardarSecretoTOTPFn   func(ctx context.Context, id int, secreto *string) error

	MedicoFn              func(ctx context.Context, id int) (map[string]any, error)
	MedicosFn             func(ctx context.Context, activo *bool) ([]map[string]any, error)
	InsertarMedicoFn      func(ctx context.Context, m models.CamposMedico) (map[string]any, error)
	ActualizarMedicoFn    func(ctx context.Context, id int, m models.CamposMedico) (map[string]any, error)
	CambiarEstadoMedicoFn func(ctx context.Context, id int, activo bool) (map[string]any, error)

	InsertarConsultaFn   func(ctx context.Context, d models.DatosConsulta) (int, error)
	HistorialConsultasFn func(ctx context.Context, filtro models.FiltroHistorial) ([]map[string]any, error)
	ConFechaConsulta     bool
}

func (a *almacenFalso) CredencialesUsuario(ctx context.Context, correo string) (map[string]any, error) {
	if a.CredencialesUsuarioFn != nil {
		return a.CredencialesUsuarioFn(ctx, correo)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) Usuario(ctx context.Context, id int) (map[string]any, error) {
	if a.UsuarioFn != nil {
		return a.UsuarioFn(ctx, id)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) Usuarios(ctx context.Context, filtro models.FiltroUsuarios) ([]map[string]any, error) {
	if a.UsuariosFn != nil {
		return a.UsuariosFn(ctx, filtro)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) InsertarUsuario(ctx context.Context, u models.CamposUsuario, hash string) (map[string]any, error) {
	if a.InsertarUsuarioFn != nil {
		return a.InsertarUsuarioFn(ctx, u, hash)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) ActualizarUsuario(ctx context.Context, id int, u models.CamposUsuario, hash *string) (map[string]any, error) {
	if a.ActualizarUsuarioFn != nil {
		return a.ActualizarUsuarioFn(ctx, id, u, hash)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) CambiarEstadoUsuario(ctx context.Context, id int, activo bool) (map[string]any, error) {
	if a.CambiarEstadoUsuarioFn != nil {
		return a.CambiarEstadoUsuarioFn(ctx, id, activo)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) GuardarSecretoTOTP(ctx context.Context, id int, secreto *string) error {
	if a.GuardarSecretoTOTPFn != nil {
		return a.GuardarSecretoTOTPFn(ctx, id, secreto)
	}
	return errSinImplementar
}

func (a *almacenFalso) Medico(ctx context.Context, id int) (map[string]any, error) {
	if a.MedicoFn != nil {
		return a.MedicoFn(ctx, id)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) Medicos(ctx context.Context, activo *bool) ([]map[string]any, error) {
	if a.MedicosFn != nil {
		return a.MedicosFn(ctx, activo)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) InsertarMedico(ctx context.Context, m models.CamposMedico) (map[string]any, error) {
	if a.InsertarMedicoFn != nil {
		return a.InsertarMedicoFn(ctx, m)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) ActualizarMedico(ctx context.Context, id int, m models.CamposMedico) (map[string]any, error) {
	if a.ActualizarMedicoFn != nil {
		return a.ActualizarMedicoFn(ctx, id, m)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) CambiarEstadoMedico(ctx context.Context, id int, activo bool) (map[string]any, error) {
	if a.CambiarEstadoMedicoFn != nil {
		return a.CambiarEstadoMedicoFn(ctx, id, activo)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) InsertarConsulta(ctx context.Context, d models.DatosConsulta) (int, error) {
	if a.InsertarConsultaFn != nil {
		return a.InsertarConsultaFn(ctx, d)
	}
	return 0, errSinImplementar
}

func (a *almacenFalso) HistorialConsultas(ctx context.Context, filtro models.FiltroHistorial) ([]map[string]any, error) {
	if a.HistorialConsultasFn != nil {
		return a.HistorialConsultasFn(ctx, filtro)
	}
	return nil, errSinImplementar
}

func (a *almacenFalso) TieneFechaConsulta() bool {
	return a.ConFechaConsulta
}

// appPrueba monta las rutas del API sobre el almacén falso, sin limitadores.
func appPrueba(a Almacen) *fiber.App {
	app := fiber.New()
	h := Nuevo(a)

	app.Post("/iniciar-sesion", h.IniciarSesion)
	app.Post("/crear-consulta", h.CrearConsulta)
	app.Get("/historial-consultas", h.HistorialConsultas)
	app.Get("/medicos", h.ListarMedicos)
	app.Post("/medicos", h.CrearMedico)
	app.Put("/medicos/:id", h.ActualizarMedico)
	app.Patch("/medicos/:id/estado", h.CambiarEstadoMedico)
	app.Get("/usuarios", h.ListarUsuarios)
	app.Post("/usuarios", h.CrearUsuario)
	app.Put("/usuarios/:id", h.ActualizarUsuario)
	app.Patch("/usuarios/:id/estado", h.CambiarEstadoUsuario)

	return app
}

func peticionJSON(metodo, ruta, cuerpo string) *http.Request {
	var lector io.Reader
	if cuerpo != "" {
		lector = strings.NewReader(cuerpo)
	}
	req := httptest.NewRequest(metodo, ruta, lector)
	if cuerpo != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// ejecutar manda la petición a la app y decodifica el sobre de respuesta.
func ejecutar(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("la petición falló: %v", err)
	}
	defer resp.Body.Close()

	var sobre map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&sobre); err != nil {
		t.Fatalf("respuesta ilegible: %v", err)
	}
	return resp.StatusCode, sobre
}

func erroresDe(sobre map[string]any) map[string]any {
	errores, _ := sobre["errores"].(map[string]any)
	return errores
}

// filaMedico arma una fila cruda como la devolvería el almacén real.
func filaMedico(id int) map[string]any {
	creado := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return map[string]any{
		"id":               int32(id),
		"primer_nombre":    "Laura",
		"segundo_nombre":   nil,
		"apellido_paterno": "Mendoza",
		"apellido_materno": "Ríos",
		"cedula":           "CED-1001",
		"telefono":         "5551234567",
		"especialidad":     "Cardiología",
		"email":            "laura@clinica.mx",
		"activo":           true,
		"fecha_creacion":   creado,
	}
}

func filaUsuario(id int) map[string]any {
	creado := time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)
	return map[string]any{
		"id":              int32(id),
		"correo":          "recepcion@clinica.mx",
		"nombre_completo": "Ana Torres",
		"id_medico":       nil,
		"activo":          true,
		"fecha_creacion":  creado,
	}
}
