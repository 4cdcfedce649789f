package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoEncontrado indica que el registro solicitado no existe.
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrMedicoNoExiste y ErrPacienteNoExiste marcan referencias inválidas
	// detectadas dentro de la transacción de consulta.
	ErrMedicoNoExiste   = errors.New("el médico no existe")
	ErrPacienteNoExiste = errors.New("el paciente no existe")
)

// ErrDuplicado representa una violación de unicidad atribuida a campos
// concretos a partir del nombre de la restricción.
type ErrDuplicado struct {
	Campos map[string]string
}

func (e *ErrDuplicado) Error() string {
	claves := make([]string, 0, len(e.Campos))
	for campo := range e.Campos {
		claves = append(claves, campo)
	}
	sort.Strings(claves)
	return fmt.Sprintf("valor duplicado en: %s", strings.Join(claves, ", "))
}

// Tabla fija restricción → campo público. Una restricción desconocida no se
// atribuye y el error se propaga tal cual (termina en 500).
var camposPorRestriccion = map[string]string{
	"medicos_cedula_key": "cedula",
	"medicos_email_key":  "email",
	"usuario_correo_key": "correo",
}

var mensajesDuplicado = map[string]string{
	"cedula": "La cédula ya está registrada.",
	"email":  "El correo electrónico ya está registrado.",
	"correo": "El correo electrónico ya está registrado.",
}

const codigoUnicidad = "23505"

func traducirError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codigoUnicidad {
		if campo, conocido := camposPorRestriccion[pgErr.ConstraintName]; conocido {
			return &ErrDuplicado{Campos: map[string]string{campo: mensajesDuplicado[campo]}}
		}
	}
	return err
}
