package handlers

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ivanrmz/clinica-backend/models"
)

// Longitud máxima de los campos de texto libre de una consulta.
const longitudMaximaTexto = 1000

var (
	patronFecha = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	patronHora  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// validarMedico reúne todas las fallas de un alta o actualización de médico.
func validarMedico(m models.CamposMedico) map[string]string {
	errores := map[string]string{}

	if m.PrimerNombre == nil {
		errores["primer_nombre"] = "El primer nombre es obligatorio."
	}
	if m.ApellidoPaterno == nil {
		errores["apellido_paterno"] = "El apellido paterno es obligatorio."
	}
	if m.Cedula == nil {
		errores["cedula"] = "La cédula es obligatoria."
	}
	if m.Especialidad == nil {
		errores["especialidad"] = "La especialidad es obligatoria."
	}
	if m.Email != nil && !esCorreoValido(*m.Email) {
		errores["email"] = "El correo electrónico no es válido."
	}
	if m.Activo == nil {
		errores["activo"] = "El estado activo es inválido."
	}

	return errores
}

// validarUsuario reúne las fallas de un alta o actualización de cuenta. La
// contraseña solo es obligatoria al crear; en una actualización su ausencia
// significa conservar la actual.
func validarUsuario(u models.CamposUsuario, esCreacion bool) map[string]string {
	errores := map[string]string{}

	if u.Correo == nil || !esCorreoValido(*u.Correo) {
		errores["correo"] = "El correo electrónico es obligatorio y debe ser válido."
	}
	if esCreacion && u.Password == nil {
		errores["password"] = "La contraseña es obligatoria."
	}
	if u.Activo == nil {
		errores["activo"] = "El estado activo es inválido."
	}

	return errores
}

// validarConsulta cubre referencias, texto obligatorio, cotas de longitud y
// los campos opcionales de fecha y hora.
func validarConsulta(d models.DatosConsulta) map[string]string {
	errores := map[string]string{}

	if d.IDMedico <= 0 {
		errores["id_medico"] = "El médico es obligatorio."
	}
	if d.IDPaciente <= 0 {
		errores["id_paciente"] = "El paciente es obligatorio."
	}

	if d.Sintomas == "" {
		errores["sintomas"] = "Los síntomas son obligatorios."
	} else if utf8.RuneCountInString(d.Sintomas) > longitudMaximaTexto {
		errores["sintomas"] = "Los síntomas no deben exceder 1000 caracteres."
	}
	if utf8.RuneCountInString(d.Recomendaciones) > longitudMaximaTexto {
		errores["recomendaciones"] = "Las recomendaciones no deben exceder 1000 caracteres."
	}
	if utf8.RuneCountInString(d.Diagnostico) > longitudMaximaTexto {
		errores["diagnostico"] = "El diagnóstico no debe exceder 1000 caracteres."
	}

	if d.Fecha != "" && !esFechaValida(d.Fecha) {
		errores["fecha"] = "El formato de fecha debe ser YYYY-MM-DD."
	}
	if d.Hora != "" && !esHoraValida(d.Hora) {
		errores["hora"] = "El formato de hora debe ser HH:MM."
	}

	return errores
}

// validarFiltrosFecha revisa los filtros opcionales del historial.
func validarFiltrosFecha(fechaInicio, fechaFin *string) map[string]string {
	errores := map[string]string{}

	if fechaInicio != nil && !esFechaValida(*fechaInicio) {
		errores["fechaInicio"] = "El formato de fecha debe ser YYYY-MM-DD."
	}
	if fechaFin != nil && !esFechaValida(*fechaFin) {
		errores["fechaFin"] = "El formato de fecha debe ser YYYY-MM-DD."
	}

	return errores
}

func esCorreoValido(correo string) bool {
	direccion, err := mail.ParseAddress(correo)
	return err == nil && direccion.Address == correo
}

// esFechaValida exige la forma YYYY-MM-DD y que denote una fecha real del
// calendario (2024-02-30 no pasa).
func esFechaValida(fecha string) bool {
	if !patronFecha.MatchString(fecha) {
		return false
	}
	_, err := time.Parse("2006-01-02", fecha)
	return err == nil
}

// esHoraValida exige HH:MM con hora en [0,23] y minuto en [0,59].
func esHoraValida(hora string) bool {
	if !patronHora.MatchString(hora) {
		return false
	}
	partes := strings.SplitN(hora, ":", 2)
	h, _ := strconv.Atoi(partes[0])
	m, _ := strconv.Atoi(partes[1])
	return h <= 23 && m <= 59
}

// sintetizarDiagnostico arma el diagnóstico final: el texto explícito manda;
// solo en su ausencia la fecha y la hora validadas se pliegan como
// fragmentos "Fecha: ..." / "Hora: ..." unidos por " | ".
func sintetizarDiagnostico(d models.DatosConsulta) string {
	if d.Diagnostico != "" {
		return d.Diagnostico
	}

	var fragmentos []string
	if d.Fecha != "" {
		fragmentos = append(fragmentos, "Fecha: "+d.Fecha)
	}
	if d.Hora != "" {
		fragmentos = append(fragmentos, "Hora: "+d.Hora)
	}
	return strings.Join(fragmentos, " | ")
}
