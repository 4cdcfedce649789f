package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Listas de alias aceptados por campo lógico; el primer nombre presente gana.
var (
	aliasMedico          = []string{"id_medico", "medicoId"}
	aliasPaciente        = []string{"id_paciente", "pacienteId"}
	aliasSintomas        = []string{"sintomas", "motivo"}
	aliasRecomendaciones = []string{"recomendaciones", "notas"}
	aliasFechaInicio     = []string{"fechaInicio", "fecha_desde"}
	aliasFechaFin        = []string{"fechaFin", "fecha_hasta"}
)

// NormalizarCadena recorta espacios y devuelve nil para nulos o cadenas que
// quedan vacías tras el recorte.
func NormalizarCadena(valor any) *string {
	if valor == nil {
		return nil
	}
	texto := strings.TrimSpace(comoTexto(valor))
	if texto == "" {
		return nil
	}
	return &texto
}

// InterpretarBooleano acepta booleanos, números (verdadero solo cuando su
// truncamiento entero es 1) y las cadenas del conjunto si/sí/on/1/true y
// no/off/0/false. Cualquier otro valor devuelve nil para que el validador
// reporte el campo en lugar de asumir un valor por omisión.
func InterpretarBooleano(valor any) *bool {
	switch v := valor.(type) {
	case bool:
		return &v
	case int:
		return booleanoDeEntero(v)
	case int32:
		return booleanoDeEntero(int(v))
	case int64:
		return booleanoDeEntero(int(v))
	case float32:
		return booleanoDeEntero(int(math.Trunc(float64(v))))
	case float64:
		return booleanoDeEntero(int(math.Trunc(v)))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return booleanoDeEntero(int(math.Trunc(f)))
		}
		return nil
	case string:
		normalizado := strings.ToLower(strings.TrimSpace(v))
		switch normalizado {
		case "1", "true", "on", "si", "sí":
			verdadero := true
			return &verdadero
		case "0", "false", "off", "no":
			falso := false
			return &falso
		}
		if f, err := strconv.ParseFloat(normalizado, 64); err == nil {
			return booleanoDeEntero(int(math.Trunc(f)))
		}
		return nil
	}
	return nil
}

func booleanoDeEntero(n int) *bool {
	resultado := n == 1
	return &resultado
}

// comoTexto convierte cualquier valor escalar del cuerpo JSON a cadena.
func comoTexto(valor any) string {
	switch v := valor.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

// comoEntero interpreta el valor como entero; lo que no se pueda interpretar
// vale 0, igual que los identificadores ilegibles de una petición.
func comoEntero(valor any) int {
	switch v := valor.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// enteroConAlias devuelve el primer valor positivo entre los alias presentes.
func enteroConAlias(datos map[string]any, alias []string) int {
	for _, clave := range alias {
		if valor, presente := datos[clave]; presente {
			if n := comoEntero(valor); n > 0 {
				return n
			}
		}
	}
	return 0
}

// cadenaConAlias devuelve la primera cadena no vacía entre los alias.
func cadenaConAlias(datos map[string]any, alias []string) string {
	for _, clave := range alias {
		if valor, presente := datos[clave]; presente {
			if texto := strings.TrimSpace(comoTexto(valor)); texto != "" {
				return texto
			}
		}
	}
	return ""
}
