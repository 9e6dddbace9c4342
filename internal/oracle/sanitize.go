package oracle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	stringFields = []string{
		"tipo_documento",
		"titular_documento",
		"fecha_emision",
		"calidad_imagen",
		"observacion_redactada",
		"numero_if_encontrado_en_ce",
		"firmante_ce",
		"cargo_firmante_ce",
	}
	intFields = []string{
		"anio_documento",
		"cantidad_firmas_visibles",
	}
	boolFields = []string{
		"es_pre_2012",
		"multiples_firmas",
		"sello_ministerio_visible",
		"sello_claro",
		"es_foto_celular",
		"ce_referencia_if_correctamente",
	}
	listFields = []string{
		"firmantes_visibles",
		"problemas_detectados",
	}
)

// sanitize coerces known fields in place to the types AnalysisRecord expects.
// Values that cannot be coerced are removed. Unknown keys are left alone.
// It returns one entry per changed field.
func sanitize(m map[string]any) []string {
	var changed []string
	note := func(key, what string) {
		changed = append(changed, key+"("+what+")")
	}

	if _, ok := m["observacion_redactada"]; !ok {
		if v, ok := m["observaciones"]; ok {
			m["observacion_redactada"] = v
			note("observacion_redactada", "observaciones")
		}
	}

	for _, k := range stringFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			m[k] = strings.TrimSpace(t)
		case nil:
			delete(m, k)
		case float64:
			m[k] = strconv.FormatFloat(t, 'f', -1, 64)
			note(k, "number")
		case bool:
			m[k] = strconv.FormatBool(t)
			note(k, "bool")
		default:
			delete(m, k)
			note(k, "type")
		}
	}

	for _, k := range intFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			if t < math.MinInt32 || t > math.MaxInt32 {
				delete(m, k)
				note(k, "range")
				continue
			}
			if t != math.Trunc(t) {
				m[k] = math.Trunc(t)
				note(k, "fraction")
			}
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(t))
			if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
				delete(m, k)
				note(k, "string")
				continue
			}
			m[k] = n
			note(k, "string")
		case nil:
			delete(m, k)
		default:
			delete(m, k)
			note(k, "type")
		}
	}

	for _, k := range boolFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
		case string:
			b, ok := parseBool(t)
			if !ok {
				delete(m, k)
				note(k, "string")
				continue
			}
			m[k] = b
			note(k, "string")
		case float64:
			m[k] = t != 0
			note(k, "number")
		case nil:
			delete(m, k)
		default:
			delete(m, k)
			note(k, "type")
		}
	}

	for _, k := range listFields {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case []any:
			out := make([]string, 0, len(t))
			for _, item := range t {
				switch s := item.(type) {
				case string:
					if s = strings.TrimSpace(s); s != "" {
						out = append(out, s)
					}
				case nil:
				default:
					out = append(out, fmt.Sprint(s))
				}
			}
			if len(out) != len(t) {
				note(k, "items")
			}
			m[k] = out
		case string:
			if s := strings.TrimSpace(t); s != "" {
				m[k] = []string{s}
			} else {
				m[k] = []string{}
			}
			note(k, "string")
		case nil:
			delete(m, k)
		default:
			delete(m, k)
			note(k, "type")
		}
	}

	return changed
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "sí", "si", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}
