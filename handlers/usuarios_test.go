package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ivanrmz/clinica-backend/database"
	"github.com/ivanrmz/clinica-backend/models"
)

func TestCrearUsuarioValidaciones(t *testing.T) {
	app := appPrueba(&almacenFalso{})

	codigo, sobre := ejecutar(t, app, peticionJSON("POST", "/usuarios", `{}`))
	assert.Equal(t, 400, codigo)
	errores := erroresDe(sobre)
	assert.Contains(t, errores, "correo")
	assert.Contains(t, errores, "password")

	codigo, sobre = ejecutar(t, app, peticionJSON("POST", "/usuarios",
		`{"correo":"no-es-correo","password":"abc123"}`))
	assert.Equal(t, 400, codigo)
	assert.Contains(t, erroresDe(sobre), "correo")
}

func TestCrearUsuarioGuardaSoloElHash(t *testing.T) {
	var hashRecibido string
	almacen := &almacenFalso{
		InsertarUsuarioFn: func(_ context.Context, u models.CamposUsuario, hash string) (map[string]any, error) {
			hashRecibido = hash
			return filaUsuario(3), nil
		},
	}
	app := appPrueba(almacen)

	codigo, sobre := ejecutar(t, app, peticionJSON("POST", "/usuarios",
		`{"correo":"recepcion@clinica.mx","password":"secreto123","nombre_completo":"Ana Torres"}`))

	assert.Equal(t, 201, codigo)
	assert.True(t, strings.HasPrefix(hashRecibido, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashRecibido), []byte("secreto123")))

	// La respuesta jamás incluye la contraseña ni su hash.
	assert.NotContains(t, sobre, "password")
	usuario, _ := sobre["usuario"].(map[string]any)
	require.NotNil(t, usuario)
	assert.NotContains(t, usuario, "password")
}

func TestCrearUsuarioMedicoAsociadoInexistente(t *testing.T) {
	almacen := &almacenFalso{
		MedicoFn: func(context.Context, int) (map[string]any, error) {
			return nil, database.ErrNoEncontrado
		},
	}
	app := appPrueba(almacen)

	codigo, sobre := ejecutar(t, app, peticionJSON("POST", "/usuarios",
		`{"correo":"recepcion@clinica.mx","password":"secreto123","id_medico":42}`))

	assert.Equal(t, 400, codigo)
	assert.Contains(t, erroresDe(sobre), "id_medico")
}

func TestCrearUsuarioFallaAlVerificarMedicoNoInserta(t *testing.T) {
	insertado := false
	almacen := &almacenFalso{
		MedicoFn: func(context.Context, int) (map[string]any, error) {
			return nil, errors.New("conexión perdida")
		},
		InsertarUsuarioFn: func(context.Context, models.CamposUsuario, string) (map[string]any, error) {
			insertado = true
			return filaUsuario(3), nil
		},
	}
	app := appPrueba(almacen)

	codigo, sobre := ejecutar(t, app, peticionJSON("POST", "/usuarios",
		`{"correo":"recepcion@clinica.mx","password":"secreto123","id_medico":42}`))

	// Un fallo del almacén al verificar la referencia es 500 y corta el flujo:
	// nada debe escribirse después.
	assert.Equal(t, 500, codigo)
	assert.Equal(t, false, sobre["estado"])
	assert.False(t, insertado)
}

func TestActualizarUsuarioFallaAlVerificarMedicoNoActualiza(t *testing.T) {
	actualizado := false
	almacen := &almacenFalso{
		UsuarioFn: func(context.Context, int) (map[string]any, error) {
			return filaUsuario(3), nil
		},
		MedicoFn: func(context.Context, int) (map[string]any, error) {
			return nil, errors.New("conexión perdida")
		},
		ActualizarUsuarioFn: func(context.Context, int, models.CamposUsuario, *string) (map[string]any, error) {
			actualizado = true
			return filaUsuario(3), nil
		},
	}
	app := appPrueba(almacen)

	codigo, _ := ejecutar(t, app, peticionJSON("PUT", "/usuarios/3", `{"id_medico":42}`))

	assert.Equal(t, 500, codigo)
	assert.False(t, actualizado)
}

func TestCrearUsuarioReferenciaNoPositivaSeAnula(t *testing.T) {
	var recibido models.CamposUsuario
	almacen := &almacenFalso{
		InsertarUsuarioFn: func(_ context.Context, u models.CamposUsuario, _ string) (map[string]any, error) {
			recibido = u
			return filaUsuario(3), nil
		},
	}
	app := appPrueba(almacen)

	// Cero, vacío o nulo en la referencia equivalen a "sin médico"; no debe
	// dispararse ninguna verificación de existencia (MedicoFn es nil).
	for _, cuerpo := range []string{
		`{"correo":"a@b.mx","password":"x1","id_medico":0}`,
		`{"correo":"a@b.mx","password":"x1","id_medico":""}`,
		`{"correo":"a@b.mx","password":"x1","medicoId":null}`,
	} {
		codigo, _ := ejecutar(t, app, peticionJSON("POST", "/usuarios", cuerpo))
		assert.Equal(t, 201, codigo, "cuerpo: %s", cuerpo)
		assert.Nil(t, recibido.IDMedico)
	}
}

func TestCrearUsuarioCorreoDuplicado(t *testing.T) {
	almacen := &almacenFalso{
		InsertarUsuarioFn: func(context.Context, models.CamposUsuario, string) (map[string]any, error) {
			return nil, &database.ErrDuplicado{Campos: map[string]string{"correo": "El correo electrónico ya está registrado."}}
		},
	}
	app := appPrueba(almacen)

	codigo, sobre := ejecutar(t, app, peticionJSON("POST", "/usuarios",
		`{"correo":"recepcion@clinica.mx","password":"secreto123"}`))

	assert.Equal(t, 409, codigo)
	assert.Contains(t, erroresDe(sobre), "correo")
}

func TestActualizarUsuarioPasswordEnBlancoConservaHash(t *testing.T) {
	var hashRecibido *string
	almacen := &almacenFalso{
		UsuarioFn: func(context.Context, int) (map[string]any, error) {
			return filaUsuario(3), nil
		},
		ActualizarUsuarioFn: func(_ context.Context, _ int, u models.CamposUsuario, hash *string) (map[string]any, error) {
			hashRecibido = hash
			return filaUsuario(3), nil
		},
	}
	app := appPrueba(almacen)

	codigo, _ := ejecutar(t, app, peticionJSON("PUT", "/usuarios/3", `{"password":"   "}`))
	assert.Equal(t, 200, codigo)
	assert.Nil(t, hashRecibido)

	codigo, _ = ejecutar(t, app, peticionJSON("PUT", "/usuarios/3", `{"password":"nueva123"}`))
	assert.Equal(t, 200, codigo)
	require.NotNil(t, hashRecibido)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*hashRecibido), []byte("nueva123")))
}

func TestActualizarUsuarioParcialConservaCorreo(t *testing.T) {
	var recibido models.CamposUsuario
	almacen := &almacenFalso{
		UsuarioFn: func(context.Context, int) (map[string]any, error) {
			return filaUsuario(3), nil
		},
		ActualizarUsuarioFn: func(_ context.Context, _ int, u models.CamposUsuario, _ *string) (map[string]any, error) {
			recibido = u
			return filaUsuario(3), nil
		},
	}
	app := appPrueba(almacen)

	codigo, _ := ejecutar(t, app, peticionJSON("PUT", "/usuarios/3", `{"nombre_completo":"Ana T. Robles"}`))
	assert.Equal(t, 200, codigo)
	require.NotNil(t, recibido.Correo)
	assert.Equal(t, "recepcion@clinica.mx", *recibido.Correo)
	require.NotNil(t, recibido.NombreCompleto)
	assert.Equal(t, "Ana T. Robles", *recibido.NombreCompleto)
}

func TestCambiarEstadoUsuario(t *testing.T) {
	almacen := &almacenFalso{
		UsuarioFn: func(context.Context, int) (map[string]any, error) {
			return filaUsuario(3), nil
		},
		CambiarEstadoUsuarioFn: func(_ context.Context, _ int, activo bool) (map[string]any, error) {
			fila := filaUsuario(3)
			fila["activo"] = activo
			return fila, nil
		},
	}
	app := appPrueba(almacen)

	codigo, sobre := ejecutar(t, app, peticionJSON("PATCH", "/usuarios/3/estado", `{"activo":true}`))
	assert.Equal(t, 200, codigo)
	assert.Equal(t, "Usuario activado correctamente.", sobre["mensaje"])
}

func TestListarUsuariosConFiltros(t *testing.T) {
	var filtroRecibido models.FiltroUsuarios
	almacen := &almacenFalso{
		UsuariosFn: func(_ context.Context, filtro models.FiltroUsuarios) ([]map[string]any, error) {
			filtroRecibido = filtro
			return []map[string]any{filaUsuario(3)}, nil
		},
	}
	app := appPrueba(almacen)

	codigo, _ := ejecutar(t, app, peticionJSON("GET", "/usuarios?activo=0&medicoId=7", ""))
	assert.Equal(t, 200, codigo)
	require.NotNil(t, filtroRecibido.Activo)
	assert.False(t, *filtroRecibido.Activo)
	assert.Equal(t, 7, filtroRecibido.IDMedico)
}
