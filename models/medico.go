package models

import "time"

// Medico es la forma pública de un registro de médico. El password nunca
// forma parte de esta estructura.
type Medico struct {
	ID              int        `json:"id"`
	PrimerNombre    string     `json:"primer_nombre"`
	SegundoNombre   *string    `json:"segundo_nombre"`
	ApellidoPaterno string     `json:"apellido_paterno"`
	ApellidoMaterno *string    `json:"apellido_materno"`
	Cedula          string     `json:"cedula"`
	Telefono        *string    `json:"telefono"`
	Especialidad    string     `json:"especialidad"`
	Email           *string    `json:"email"`
	Activo          bool       `json:"activo"`
	FechaCreacion   *time.Time `json:"fecha_creacion"`
}

// CamposMedico son los campos ya normalizados de una petición de alta o
// actualización. Un puntero nil significa campo ausente o vacío.
type CamposMedico struct {
	PrimerNombre    *string
	SegundoNombre   *string
	ApellidoPaterno *string
	ApellidoMaterno *string
	Cedula          *string
	Telefono        *string
	Especialidad    *string
	Email           *string
	Activo          *bool
}
