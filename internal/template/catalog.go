// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/davistroy/radioforms-sub003/internal/config"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

//go:embed assets/*.json
var assetsFS embed.FS

//go:embed meta_schema.json
var metaSchemaJSON []byte

// Catalog holds every loaded template keyed by form type. It is built
// once at startup and read-only afterwards, so no locking is needed.
type Catalog struct {
	templates map[string]*Template
	logger    *logger.Logger
}

// NewCatalog loads the embedded template assets and, when cfg.Dir is
// set, the documents found there. Directory documents replace embedded
// ones with the same form type. Every document is checked against the
// template meta-schema and then statically verified; any invalid
// document fails the whole load.
func NewCatalog(cfg config.Templates, log *logger.Logger) (*Catalog, error) {
	meta := &jsonschema.Schema{}
	if err := json.Unmarshal(metaSchemaJSON, meta); err != nil {
		return nil, fmt.Errorf("error compiling template meta-schema: %w", err)
	}

	c := &Catalog{
		templates: make(map[string]*Template),
		logger:    log,
	}

	entries, err := fs.ReadDir(assetsFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded templates: %w", err)
	}
	for _, entry := range entries {
		raw, err := fs.ReadFile(assetsFS, "assets/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("error reading embedded template %s: %w", entry.Name(), err)
		}
		tpl, err := parseTemplate(meta, raw, entry.Name())
		if err != nil {
			return nil, err
		}
		if _, exists := c.templates[tpl.FormType]; exists {
			return nil, &SchemaError{
				FormType: tpl.FormType,
				Source:   entry.Name(),
				Detail:   "duplicate template for form type",
			}
		}
		c.templates[tpl.FormType] = tpl
	}

	if cfg.Dir != "" {
		if err := c.loadOverrides(meta, cfg.Dir); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("func", "template.NewCatalog").
		Int("templates", len(c.templates)).
		Msg("template catalog loaded")

	return c, nil
}

// loadOverrides loads *.json documents from dir. A document whose form
// type matches an embedded template replaces it; two directory
// documents for the same form type are a load error.
func (c *Catalog) loadOverrides(meta *jsonschema.Schema, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading template override directory %s: %w", dir, err)
	}

	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("error reading template override %s: %w", entry.Name(), err)
		}
		tpl, err := parseTemplate(meta, raw, entry.Name())
		if err != nil {
			return err
		}
		if prior, dup := seen[tpl.FormType]; dup {
			return &SchemaError{
				FormType: tpl.FormType,
				Source:   entry.Name(),
				Detail:   fmt.Sprintf("duplicate template for form type (already loaded from %s)", prior),
			}
		}
		seen[tpl.FormType] = entry.Name()

		if _, replacing := c.templates[tpl.FormType]; replacing {
			c.logger.Info().
				Str("func", "Catalog.loadOverrides").
				Str("form_type", tpl.FormType).
				Str("source", entry.Name()).
				Msg("overriding embedded template")
		}
		c.templates[tpl.FormType] = tpl
	}

	return nil
}

// Get returns the active template for formType.
func (c *Catalog) Get(formType string) (*Template, bool) {
	tpl, ok := c.templates[formType]
	return tpl, ok
}

// FormTypes returns the loaded form types in sorted order.
func (c *Catalog) FormTypes() []string {
	types := make([]string, 0, len(c.templates))
	for formType := range c.templates {
		types = append(types, formType)
	}
	sort.Strings(types)
	return types
}

// List returns every loaded template ordered by form type.
func (c *Catalog) List() []*Template {
	out := make([]*Template, 0, len(c.templates))
	for _, formType := range c.FormTypes() {
		out = append(out, c.templates[formType])
	}
	return out
}

// parseTemplate validates raw against the meta-schema, decodes it, and
// runs the static checks the meta-schema cannot express.
func parseTemplate(meta *jsonschema.Schema, raw []byte, source string) (*Template, error) {
	keyErrs, err := meta.ValidateBytes(context.Background(), raw)
	if err != nil {
		return nil, &SchemaError{Source: source, Detail: err.Error()}
	}
	if len(keyErrs) > 0 {
		return nil, &SchemaError{Source: source, Detail: keyErrs[0].Message}
	}

	var tpl Template
	if err := json.Unmarshal(raw, &tpl); err != nil {
		return nil, &SchemaError{Source: source, Detail: err.Error()}
	}

	if err := checkTemplate(&tpl, source); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func checkTemplate(tpl *Template, source string) error {
	fail := func(format string, args ...any) error {
		return &SchemaError{
			FormType: tpl.FormType,
			Source:   source,
			Detail:   fmt.Sprintf(format, args...),
		}
	}

	if !models.IsKnownFormType(tpl.FormType) {
		return fail("unknown form type %q", tpl.FormType)
	}
	if tpl.Version == "" {
		return fail("missing template version")
	}
	if len(tpl.Sections) == 0 {
		return fail("template has no sections")
	}

	sectionIDs := make(map[string]bool)
	fieldIDs := make(map[string]bool)
	for si := range tpl.Sections {
		section := &tpl.Sections[si]
		if sectionIDs[section.ID] {
			return fail("duplicate section id %q", section.ID)
		}
		sectionIDs[section.ID] = true

		for fi := range section.Fields {
			field := &section.Fields[fi]
			if fieldIDs[field.ID] {
				return fail("duplicate field id %q", field.ID)
			}
			fieldIDs[field.ID] = true

			if !field.Type.Valid() {
				return fail("field %q has unknown type %q", field.ID, field.Type)
			}
			if (field.Type == TypeSingleSelect || field.Type == TypeMultiSelect) && len(field.Options) == 0 {
				return fail("select field %q has no options", field.ID)
			}

			for ri := range field.Rules {
				rule := &field.Rules[ri]
				if !rule.Type.Valid() {
					return fail("field %q has unknown rule type %q", field.ID, rule.Type)
				}
				if rule.Type == RulePattern {
					if _, err := regexp.Compile(rule.Pattern); err != nil {
						return fail("field %q has an uncompilable pattern: %v", field.ID, err)
					}
				}
				if rule.Type == RuleCrossField && rule.Field == "" {
					return fail("field %q has a cross_field rule without a target field", field.ID)
				}
			}
		}
	}

	// conditions may only reference fields declared in this template
	for si := range tpl.Sections {
		section := &tpl.Sections[si]
		if section.Condition != nil && !fieldIDs[section.Condition.FieldID] {
			return fail("section %q condition references unknown field %q", section.ID, section.Condition.FieldID)
		}
		for fi := range section.Fields {
			field := &section.Fields[fi]
			if field.Condition != nil && !fieldIDs[field.Condition.FieldID] {
				return fail("field %q condition references unknown field %q", field.ID, field.Condition.FieldID)
			}
			for ri := range field.Rules {
				rule := &field.Rules[ri]
				if rule.Type == RuleCrossField && !fieldIDs[rule.Field] {
					return fail("field %q cross_field rule references unknown field %q", field.ID, rule.Field)
				}
			}
		}
	}

	return nil
}
