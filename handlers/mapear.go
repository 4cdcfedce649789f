package handlers

import (
	"strings"
	"time"

	"github.com/ivanrmz/clinica-backend/models"
)

// Los mapeadores convierten filas crudas (map columna→valor) en las formas
// públicas, forzando enteros y booleanos al tipo correcto sin importar cómo
// los entregue el driver.

// MapearMedico arma la forma pública de un médico. El password jamás viaja
// por aquí: las consultas de médicos no lo seleccionan y el mapeo ignora
// cualquier columna que no conozca.
func MapearMedico(fila map[string]any) models.Medico {
	return models.Medico{
		ID:              comoEntero(fila["id"]),
		PrimerNombre:    comoTexto(fila["primer_nombre"]),
		SegundoNombre:   comoTextoPtr(fila["segundo_nombre"]),
		ApellidoPaterno: comoTexto(fila["apellido_paterno"]),
		ApellidoMaterno: comoTextoPtr(fila["apellido_materno"]),
		Cedula:          comoTexto(fila["cedula"]),
		Telefono:        comoTextoPtr(fila["telefono"]),
		Especialidad:    comoTexto(fila["especialidad"]),
		Email:           comoTextoPtr(fila["email"]),
		Activo:          comoBooleano(fila["activo"]),
		FechaCreacion:   comoTiempoPtr(fila["fecha_creacion"]),
	}
}

// MapearUsuario arma la forma pública de una cuenta; id_medico conserva el
// nulo cuando la cuenta no está ligada a un médico.
func MapearUsuario(fila map[string]any) models.Usuario {
	return models.Usuario{
		ID:             comoEntero(fila["id"]),
		Correo:         comoTexto(fila["correo"]),
		NombreCompleto: comoTextoPtr(fila["nombre_completo"]),
		IDMedico:       comoEnteroPtr(fila["id_medico"]),
		Activo:         comoBooleano(fila["activo"]),
		FechaCreacion:  comoTiempoPtr(fila["fecha_creacion"]),
	}
}

// MapearConsulta arma un registro del historial con los objetos anidados
// tomados de las columnas con prefijo medico_ / paciente_ del join. La fecha
// de creación solo se incluye cuando el esquema la expone.
func MapearConsulta(fila map[string]any, conFechaCreacion bool) models.Consulta {
	consulta := models.Consulta{
		ID:              comoEntero(fila["id"]),
		IDMedico:        comoEntero(fila["id_medico"]),
		IDPaciente:      comoEntero(fila["id_paciente"]),
		Sintomas:        comoTexto(fila["sintomas"]),
		Recomendaciones: comoTextoPtr(fila["recomendaciones"]),
		Diagnostico:     comoTextoPtr(fila["diagnostico"]),
		Medico: models.MedicoResumen{
			ID:              comoEntero(fila["id_medico"]),
			PrimerNombre:    comoTexto(fila["medico_primer_nombre"]),
			SegundoNombre:   comoTextoPtr(fila["medico_segundo_nombre"]),
			ApellidoPaterno: comoTexto(fila["medico_apellido_paterno"]),
			ApellidoMaterno: comoTextoPtr(fila["medico_apellido_materno"]),
			Telefono:        comoTextoPtr(fila["medico_telefono"]),
			Especialidad:    comoTexto(fila["medico_especialidad"]),
			Email:           comoTextoPtr(fila["medico_email"]),
			Activo:          comoBooleano(fila["medico_activo"]),
		},
		Paciente: models.PacienteResumen{
			ID:              comoEntero(fila["id_paciente"]),
			PrimerNombre:    comoTexto(fila["paciente_primer_nombre"]),
			SegundoNombre:   comoTextoPtr(fila["paciente_segundo_nombre"]),
			ApellidoPaterno: comoTexto(fila["paciente_apellido_paterno"]),
			ApellidoMaterno: comoTextoPtr(fila["paciente_apellido_materno"]),
			Telefono:        comoTextoPtr(fila["paciente_telefono"]),
			Activo:          comoBooleano(fila["paciente_activo"]),
		},
	}

	if conFechaCreacion {
		consulta.FechaCreacion = comoTiempoPtr(fila["fecha_creacion"])
	}

	return consulta
}

func comoTextoPtr(valor any) *string {
	if valor == nil {
		return nil
	}
	texto := comoTexto(valor)
	if texto == "" {
		return nil
	}
	return &texto
}

func comoEnteroPtr(valor any) *int {
	if valor == nil {
		return nil
	}
	n := comoEntero(valor)
	return &n
}

func comoBooleano(valor any) bool {
	switch v := valor.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "t" || s == "true"
	}
	return false
}

func comoTiempoPtr(valor any) *time.Time {
	switch v := valor.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return v
	}
	return nil
}
