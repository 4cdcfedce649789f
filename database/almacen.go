package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivanrmz/clinica-backend/models"
)

const (
	columnasMedico  = "id, primer_nombre, segundo_nombre, apellido_paterno, apellido_materno, cedula, telefono, especialidad, email, activo, fecha_creacion"
	columnasUsuario = "id, correo, nombre_completo, id_medico, activo, fecha_creacion"
)

// Almacen ejecuta todas las operaciones contra la base relacional. Las filas
// se devuelven como map[string]any para que la capa de mapeo arme las formas
// públicas sin acoplarse al esquema exacto.
type Almacen struct {
	pool               *pgxpool.Pool
	tieneFechaConsulta bool
}

// NuevoAlmacen resuelve las banderas de esquema una sola vez al arrancar.
func NuevoAlmacen(ctx context.Context, pool *pgxpool.Pool) (*Almacen, error) {
	tieneFecha, err := detectarColumna(ctx, pool, "consulta", "fecha_creacion")
	if err != nil {
		return nil, fmt.Errorf("detectar esquema de consulta: %w", err)
	}
	return &Almacen{pool: pool, tieneFechaConsulta: tieneFecha}, nil
}

// TieneFechaConsulta informa si la tabla consulta expone fecha_creacion.
func (a *Almacen) TieneFechaConsulta() bool {
	return a.tieneFechaConsulta
}

func (a *Almacen) unaFila(ctx context.Context, sql string, args ...any) (map[string]any, error) {
	filas, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, traducirError(err)
	}
	fila, err := pgx.CollectOneRow(filas, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, traducirError(err)
	}
	return fila, nil
}

func (a *Almacen) variasFilas(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	filas, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(filas, pgx.RowToMap)
}

// --- Médicos ---

func (a *Almacen) Medico(ctx context.Context, id int) (map[string]any, error) {
	return a.unaFila(ctx, "SELECT "+columnasMedico+" FROM medicos WHERE id = $1", id)
}

func (a *Almacen) Medicos(ctx context.Context, activo *bool) ([]map[string]any, error) {
	sql := "SELECT " + columnasMedico + " FROM medicos"
	var args []any
	if activo != nil {
		sql += " WHERE activo = $1"
		args = append(args, *activo)
	}
	sql += " ORDER BY id DESC"
	return a.variasFilas(ctx, sql, args...)
}

func (a *Almacen) InsertarMedico(ctx context.Context, m models.CamposMedico) (map[string]any, error) {
	const sql = `INSERT INTO medicos
		(primer_nombre, segundo_nombre, apellido_paterno, apellido_materno, cedula, telefono, especialidad, email, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columnasMedico
	return a.unaFila(ctx, sql,
		m.PrimerNombre, m.SegundoNombre, m.ApellidoPaterno, m.ApellidoMaterno,
		m.Cedula, m.Telefono, m.Especialidad, m.Email, m.Activo)
}

func (a *Almacen) ActualizarMedico(ctx context.Context, id int, m models.CamposMedico) (map[string]any, error) {
	const sql = `UPDATE medicos SET
		primer_nombre = $1, segundo_nombre = $2, apellido_paterno = $3, apellido_materno = $4,
		cedula = $5, telefono = $6, especialidad = $7, email = $8, activo = $9
		WHERE id = $10
		RETURNING ` + columnasMedico
	return a.unaFila(ctx, sql,
		m.PrimerNombre, m.SegundoNombre, m.ApellidoPaterno, m.ApellidoMaterno,
		m.Cedula, m.Telefono, m.Especialidad, m.Email, m.Activo, id)
}

func (a *Almacen) CambiarEstadoMedico(ctx context.Context, id int, activo bool) (map[string]any, error) {
	const sql = "UPDATE medicos SET activo = $1 WHERE id = $2 RETURNING " + columnasMedico
	return a.unaFila(ctx, sql, activo, id)
}

// --- Usuarios ---

// CredencialesUsuario devuelve lo mínimo para autenticar; es la única ruta
// por la que el hash de password sale de la base.
func (a *Almacen) CredencialesUsuario(ctx context.Context, correo string) (map[string]any, error) {
	return a.unaFila(ctx, "SELECT id, password, totp_secret FROM usuario WHERE correo = $1", correo)
}

func (a *Almacen) Usuario(ctx context.Context, id int) (map[string]any, error) {
	return a.unaFila(ctx, "SELECT "+columnasUsuario+" FROM usuario WHERE id = $1", id)
}

func (a *Almacen) Usuarios(ctx context.Context, filtro models.FiltroUsuarios) ([]map[string]any, error) {
	sql := "SELECT " + columnasUsuario + " FROM usuario"
	var condiciones []string
	var args []any

	if filtro.Activo != nil {
		args = append(args, *filtro.Activo)
		condiciones = append(condiciones, fmt.Sprintf("activo = $%d", len(args)))
	}
	if filtro.IDMedico > 0 {
		args = append(args, filtro.IDMedico)
		condiciones = append(condiciones, fmt.Sprintf("id_medico = $%d", len(args)))
	}
	if len(condiciones) > 0 {
		sql += " WHERE " + strings.Join(condiciones, " AND ")
	}
	sql += " ORDER BY id DESC"
	return a.variasFilas(ctx, sql, args...)
}

func (a *Almacen) InsertarUsuario(ctx context.Context, u models.CamposUsuario, hash string) (map[string]any, error) {
	const sql = `INSERT INTO usuario (correo, password, nombre_completo, id_medico, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columnasUsuario
	return a.unaFila(ctx, sql, u.Correo, hash, u.NombreCompleto, u.IDMedico, u.Activo)
}

// ActualizarUsuario cambia el hash solo cuando la petición trajo una
// contraseña nueva; hash nil conserva la almacenada.
func (a *Almacen) ActualizarUsuario(ctx context.Context, id int, u models.CamposUsuario, hash *string) (map[string]any, error) {
	if hash != nil {
		const sql = `UPDATE usuario SET correo = $1, nombre_completo = $2, id_medico = $3, activo = $4, password = $5
			WHERE id = $6 RETURNING ` + columnasUsuario
		return a.unaFila(ctx, sql, u.Correo, u.NombreCompleto, u.IDMedico, u.Activo, *hash, id)
	}
	const sql = `UPDATE usuario SET correo = $1, nombre_completo = $2, id_medico = $3, activo = $4
		WHERE id = $5 RETURNING ` + columnasUsuario
	return a.unaFila(ctx, sql, u.Correo, u.NombreCompleto, u.IDMedico, u.Activo, id)
}

func (a *Almacen) CambiarEstadoUsuario(ctx context.Context, id int, activo bool) (map[string]any, error) {
	const sql = "UPDATE usuario SET activo = $1 WHERE id = $2 RETURNING " + columnasUsuario
	return a.unaFila(ctx, sql, activo, id)
}

// GuardarSecretoTOTP escribe o limpia (nil) el secreto de verificación en dos
// pasos de la cuenta.
func (a *Almacen) GuardarSecretoTOTP(ctx context.Context, id int, secreto *string) error {
	etiqueta, err := a.pool.Exec(ctx, "UPDATE usuario SET totp_secret = $1 WHERE id = $2", secreto, id)
	if err != nil {
		return err
	}
	if etiqueta.RowsAffected() == 0 {
		return ErrNoEncontrado
	}
	return nil
}

// --- Consultas ---

// InsertarConsulta verifica las referencias y escribe la consulta dentro de
// una sola transacción: cualquier falta revierte antes de persistir nada.
func (a *Almacen) InsertarConsulta(ctx context.Context, d models.DatosConsulta) (int, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var referencia int
	err = tx.QueryRow(ctx, "SELECT id FROM medicos WHERE id = $1", d.IDMedico).Scan(&referencia)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrMedicoNoExiste
	}
	if err != nil {
		return 0, err
	}

	err = tx.QueryRow(ctx, "SELECT id FROM paciente WHERE id = $1", d.IDPaciente).Scan(&referencia)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrPacienteNoExiste
	}
	if err != nil {
		return 0, err
	}

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO consulta (id_medico, id_paciente, sintomas, recomendaciones, diagnostico)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		d.IDMedico, d.IDPaciente, d.Sintomas, textoONulo(d.Recomendaciones), textoONulo(d.Diagnostico)).Scan(&id)
	if err != nil {
		return 0, traducirError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (a *Almacen) HistorialConsultas(ctx context.Context, filtro models.FiltroHistorial) ([]map[string]any, error) {
	columnas := []string{
		"c.id", "c.id_medico", "c.id_paciente", "c.sintomas", "c.recomendaciones", "c.diagnostico",
		"m.primer_nombre AS medico_primer_nombre",
		"m.segundo_nombre AS medico_segundo_nombre",
		"m.apellido_paterno AS medico_apellido_paterno",
		"m.apellido_materno AS medico_apellido_materno",
		"m.telefono AS medico_telefono",
		"m.especialidad AS medico_especialidad",
		"m.email AS medico_email",
		"m.activo AS medico_activo",
		"p.primer_nombre AS paciente_primer_nombre",
		"p.segundo_nombre AS paciente_segundo_nombre",
		"p.apellido_paterno AS paciente_apellido_paterno",
		"p.apellido_materno AS paciente_apellido_materno",
		"p.telefono AS paciente_telefono",
		"p.activo AS paciente_activo",
	}
	if a.tieneFechaConsulta {
		columnas = append(columnas, "c.fecha_creacion")
	}

	sql := "SELECT " + strings.Join(columnas, ", ") +
		" FROM consulta c" +
		" INNER JOIN medicos m ON m.id = c.id_medico" +
		" INNER JOIN paciente p ON p.id = c.id_paciente"

	var condiciones []string
	var args []any

	if filtro.IDMedico > 0 {
		args = append(args, filtro.IDMedico)
		condiciones = append(condiciones, fmt.Sprintf("c.id_medico = $%d", len(args)))
	}
	if filtro.IDPaciente > 0 {
		args = append(args, filtro.IDPaciente)
		condiciones = append(condiciones, fmt.Sprintf("c.id_paciente = $%d", len(args)))
	}
	if a.tieneFechaConsulta && filtro.FechaInicio != nil {
		args = append(args, *filtro.FechaInicio)
		condiciones = append(condiciones, fmt.Sprintf("c.fecha_creacion::date >= $%d", len(args)))
	}
	if a.tieneFechaConsulta && filtro.FechaFin != nil {
		args = append(args, *filtro.FechaFin)
		condiciones = append(condiciones, fmt.Sprintf("c.fecha_creacion::date <= $%d", len(args)))
	}
	if len(condiciones) > 0 {
		sql += " WHERE " + strings.Join(condiciones, " AND ")
	}
	sql += " ORDER BY c.id DESC"

	return a.variasFilas(ctx, sql, args...)
}

func textoONulo(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
