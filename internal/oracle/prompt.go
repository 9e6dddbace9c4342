package oracle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "02/01/2006"

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ComposePrompt builds the text prompt sent alongside the document: the
// mode's instructions, a temporal context anchored at now, and the output
// specification.
func ComposePrompt(req Request, now time.Time) (string, error) {
	instr, err := Instructions(req.Mode)
	if err != nil {
		return "", err
	}

	format, err := OutputFormat(req.Mode)
	if err != nil {
		return "", err
	}

	reference := req.Reference
	if reference == "" {
		reference = req.OriginalName
	}

	r := strings.NewReplacer(
		"{{year}}", strconv.Itoa(now.Year()),
		"{{reference}}", reference,
	)

	var sb strings.Builder
	sb.WriteString(r.Replace(instr))
	sb.WriteString("\n\n")
	sb.WriteString(temporalContext(now))
	sb.WriteString("\n\n")
	sb.WriteString(format)

	return sb.String(), nil
}

func temporalContext(now time.Time) string {
	today := now.Format(dateLayout)
	year := now.Year()

	var sb strings.Builder
	sb.WriteString("CONTEXTO TEMPORAL:\n")
	fmt.Fprintf(&sb, "- HOY es: %s\n", today)
	fmt.Fprintf(&sb, "- Año ACTUAL: %d\n", year)
	fmt.Fprintf(&sb, "- Mes ACTUAL: %s\n\n", monthNames[now.Month()-1])

	sb.WriteString("FECHAS VÁLIDAS (NO marcar como problema):\n")
	fmt.Fprintf(&sb, "- Cualquier fecha del año %d hasta hoy (%s)\n", year, today)
	fmt.Fprintf(&sb, "- Fechas recientes de %d (últimos meses)\n", year-1)
	fmt.Fprintf(&sb, "- Ejemplo: %q (hace 30 días) es VÁLIDO\n", now.AddDate(0, 0, -30).Format(dateLayout))
	fmt.Fprintf(&sb, "- Ejemplo: %q (hace 90 días) es VÁLIDO\n\n", now.AddDate(0, 0, -90).Format(dateLayout))

	sb.WriteString("FECHAS PROBLEMÁTICAS (sí marcar como problema):\n")
	fmt.Fprintf(&sb, "- Solo fechas FUTURAS (posteriores a %s)\n", today)
	fmt.Fprintf(&sb, "- Ejemplo: %q es FUTURO\n\n", now.AddDate(0, 0, 30).Format(dateLayout))

	fmt.Fprintf(&sb, "NO menciones %d como algo raro o futuro: ES EL AÑO ACTUAL.", year)

	return sb.String()
}
