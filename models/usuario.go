package models

import "time"

// Usuario es la forma pública de una cuenta. El hash de password se queda en
// la capa de almacenamiento.
type Usuario struct {
	ID             int        `json:"id"`
	Correo         string     `json:"correo"`
	NombreCompleto *string    `json:"nombre_completo"`
	IDMedico       *int       `json:"id_medico"`
	Activo         bool       `json:"activo"`
	FechaCreacion  *time.Time `json:"fecha_creacion"`
}

// CamposUsuario son los campos normalizados de alta o actualización.
// Password solo viene cuando la petición trae una contraseña no vacía.
type CamposUsuario struct {
	Correo         *string
	Password       *string
	NombreCompleto *string
	IDMedico       *int
	Activo         *bool
}

// FiltroUsuarios acota el listado de cuentas.
type FiltroUsuarios struct {
	Activo   *bool
	IDMedico int
}
