// SPDX-License-Identifier: Apache-2.0

package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davistroy/radioforms-sub003/internal/service"
)

// icsDesEscaper protects the frame and delimiter characters of the
// radio encoding. Backslash is listed first so escapes never compound.
var icsDesEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`{`, `\{`,
	`}`, `\}`,
)

// ICSDES encodes the form as the pipe-delimited radio transmission
// format:
//
//	{<form_type>|<field_id>=<value>|...}
//
// Only fields that are visible under the current data and non-empty are
// emitted, in template order, so the transmission matches what the
// operator sees on screen.
func ICSDES(view *service.ExportView) string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(icsDesEscaper.Replace(view.Form.FormType))

	data := view.Form.Data
	for _, field := range view.Template.VisibleFields(data) {
		if data.IsEmpty(field.ID) {
			continue
		}
		b.WriteByte('|')
		b.WriteString(icsDesEscaper.Replace(field.ID))
		b.WriteByte('=')
		b.WriteString(icsDesEscaper.Replace(encodeValue(data[field.ID])))
	}

	b.WriteByte('}')
	return b.String()
}

// encodeValue flattens a field value to transmission text. Scalars pass
// through; structured values (tables, repeatable groups) travel as
// compact JSON.
func encodeValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	case float64, float32, int, int64, json.Number:
		return fmt.Sprintf("%v", val)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
