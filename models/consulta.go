package models

import "time"

// Consulta es un registro del historial con los resúmenes de médico y
// paciente armados desde las columnas del join. FechaCreacion solo se emite
// cuando el esquema de la tabla consulta la expone.
type Consulta struct {
	ID              int             `json:"id"`
	IDMedico        int             `json:"id_medico"`
	IDPaciente      int             `json:"id_paciente"`
	Sintomas        string          `json:"sintomas"`
	Recomendaciones *string         `json:"recomendaciones"`
	Diagnostico     *string         `json:"diagnostico"`
	Medico          MedicoResumen   `json:"medico"`
	Paciente        PacienteResumen `json:"paciente"`
	FechaCreacion   *time.Time      `json:"fecha_creacion,omitempty"`
}

// MedicoResumen es la vista anidada del médico dentro de una consulta.
type MedicoResumen struct {
	ID              int     `json:"id"`
	PrimerNombre    string  `json:"primer_nombre"`
	SegundoNombre   *string `json:"segundo_nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
	Telefono        *string `json:"telefono"`
	Especialidad    string  `json:"especialidad"`
	Email           *string `json:"email"`
	Activo          bool    `json:"activo"`
}

// PacienteResumen es la vista anidada del paciente dentro de una consulta.
type PacienteResumen struct {
	ID              int     `json:"id"`
	PrimerNombre    string  `json:"primer_nombre"`
	SegundoNombre   *string `json:"segundo_nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
	Telefono        *string `json:"telefono"`
	Activo          bool    `json:"activo"`
}

// DatosConsulta es la entrada validada de /crear-consulta. Las cadenas vacías
// en Recomendaciones y Diagnostico se guardan como NULL.
type DatosConsulta struct {
	IDMedico        int
	IDPaciente      int
	Sintomas        string
	Recomendaciones string
	Diagnostico     string
	Fecha           string
	Hora            string
}

// FiltroHistorial acota el historial de consultas. Las fechas llegan ya
// validadas con forma YYYY-MM-DD.
type FiltroHistorial struct {
	IDMedico    int
	IDPaciente  int
	FechaInicio *string
	FechaFin    *string
}
