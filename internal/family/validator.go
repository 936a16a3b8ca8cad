package family

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

// ValuePlaceholder is replaced by the prop value in pattern variants.
const ValuePlaceholder = "{value}"

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern        = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	familyNamePattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	identifierPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	componentNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	tagPattern           = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("family_name", func(fl validator.FieldLevel) bool {
			return familyNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
			return identifierPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("component_name", func(fl validator.FieldLevel) bool {
			return componentNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema and cross-reference validation on a family document. Names that
// the styling library would silently ignore are rejected here.
func Validate(fam *Family) error {
	if fam == nil {
		return stylekiterrors.NewValidationError("family", "family is nil", nil)
	}

	if err := validatorInstance().Struct(fam); err != nil {
		return convertValidationError(err)
	}

	if err := validateContexts(fam.Contexts); err != nil {
		return err
	}

	names := make(map[string]string, len(fam.Components)+len(fam.Composites))
	for i, comp := range fam.Components {
		if _, exists := names[comp.Name]; exists {
			return stylekiterrors.NewValidationError(fieldFor("components", i, "name"), fmt.Sprintf("duplicate component name %q", comp.Name), nil)
		}
		names[comp.Name] = "component"
	}
	for i, comp := range fam.Composites {
		if _, exists := names[comp.Name]; exists {
			return stylekiterrors.NewValidationError(fieldFor("composites", i, "name"), fmt.Sprintf("duplicate component name %q", comp.Name), nil)
		}
		names[comp.Name] = "composite"
	}

	for i, comp := range fam.Components {
		if err := validateComponent(fam, i, comp, names); err != nil {
			return err
		}
	}

	if cycle := detectCycle(fam.Components); len(cycle) > 0 {
		return stylekiterrors.NewValidationError("components", fmt.Sprintf("target cycle detected: %s", strings.Join(cycle, " -> ")), nil)
	}

	for i, comp := range fam.Composites {
		if err := validateComposite(fam, i, comp, names); err != nil {
			return err
		}
	}

	examples := make(map[string]struct{}, len(fam.Examples))
	for i, ex := range fam.Examples {
		if _, exists := examples[ex.Name]; exists {
			return stylekiterrors.NewValidationError(fieldFor("examples", i, "name"), fmt.Sprintf("duplicate example name %q", ex.Name), nil)
		}
		examples[ex.Name] = struct{}{}
		if err := validateNode(fam, fmt.Sprintf("examples[%d].root", i), ex.Root, nil); err != nil {
			return err
		}
	}

	return nil
}

func validateContexts(contexts Contexts) error {
	seen := make(map[string]struct{}, len(contexts))
	for i, ctx := range contexts {
		if _, exists := seen[ctx.Name]; exists {
			return stylekiterrors.NewValidationError(fieldFor("contexts", i, "name"), fmt.Sprintf("duplicate context %q", ctx.Name), nil)
		}
		seen[ctx.Name] = struct{}{}

		fields := make(map[string]struct{}, len(ctx.Fields))
		for _, f := range ctx.Fields {
			field := fmt.Sprintf("contexts.%s.%s", ctx.Name, f.Name)
			if _, exists := fields[f.Name]; exists {
				return stylekiterrors.NewValidationError(field, "duplicate field", nil)
			}
			fields[f.Name] = struct{}{}

			if f.Kind == KindEnum && len(f.Values) == 0 {
				return stylekiterrors.NewValidationError(field, "enum needs at least one value", nil)
			}
			if f.Kind == KindEnum {
				for _, v := range f.Values {
					if v == nil {
						return stylekiterrors.NewValidationError(field, "enum values cannot be null", nil)
					}
				}
			}
		}
	}
	return nil
}

func validateComponent(fam *Family, index int, comp Component, names map[string]string) error {
	if kind, ok := names[comp.Target]; ok {
		if kind == "composite" {
			return stylekiterrors.NewValidationError(fieldFor("components", index, "target"), fmt.Sprintf("target %q is a composite; wrap its frame instead", comp.Target), nil)
		}
	} else if !tagPattern.MatchString(comp.Target) {
		return stylekiterrors.NewValidationError(fieldFor("components", index, "target"), fmt.Sprintf("unknown target %q", comp.Target), nil)
	}

	var ctx *Context
	if comp.Context != "" {
		found, ok := fam.Contexts.Lookup(comp.Context)
		if !ok {
			return stylekiterrors.NewValidationError(fieldFor("components", index, "context"), fmt.Sprintf("references unknown context %q", comp.Context), nil)
		}
		ctx = &found
	}

	variants := make(map[string]struct{}, len(comp.Variants))
	for j, v := range comp.Variants {
		field := fmt.Sprintf("components[%d].variants[%d]", index, j)
		if _, exists := variants[v.Name]; exists {
			return stylekiterrors.NewValidationError(field+".name", fmt.Sprintf("duplicate variant %q", v.Name), nil)
		}
		variants[v.Name] = struct{}{}

		switch {
		case len(v.Classes) > 0 && v.Pattern != "":
			return stylekiterrors.NewValidationError(field, "classes and pattern are mutually exclusive", nil)
		case len(v.Classes) == 0 && v.Pattern == "":
			return stylekiterrors.NewValidationError(field, "either classes or pattern is required", nil)
		case v.Pattern != "" && !strings.Contains(v.Pattern, ValuePlaceholder):
			return stylekiterrors.NewValidationError(field+".pattern", fmt.Sprintf("pattern must contain %s", ValuePlaceholder), nil)
		}
	}

	check := func(field string, values map[string]any) error {
		for _, name := range sortedKeys(values) {
			if _, ok := variants[name]; !ok {
				return stylekiterrors.NewValidationError(field, fmt.Sprintf("%q is not a variant of %s", name, comp.Name), nil)
			}
			if err := checkDomain(ctx, field, name, values[name]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := check(fieldFor("components", index, "default_variants"), comp.DefaultVariants); err != nil {
		return err
	}
	for j, rule := range comp.Compound {
		field := fmt.Sprintf("components[%d].compound_variants[%d]", index, j)
		if err := check(field+".when", rule.When); err != nil {
			return err
		}
		if err := check(field+".default_to", rule.DefaultTo); err != nil {
			return err
		}
	}
	for _, name := range comp.StyleOnly {
		if _, ok := variants[name]; !ok {
			return stylekiterrors.NewValidationError(fieldFor("components", index, "style_only"), fmt.Sprintf("%q is not a variant of %s", name, comp.Name), nil)
		}
	}
	return nil
}

func validateComposite(fam *Family, index int, comp Composite, names map[string]string) error {
	if names[comp.Frame] != "component" {
		return stylekiterrors.NewValidationError(fieldFor("composites", index, "frame"), fmt.Sprintf("references unknown component %q", comp.Frame), nil)
	}
	if comp.Context != "" {
		if _, ok := fam.Contexts.Lookup(comp.Context); !ok {
			return stylekiterrors.NewValidationError(fieldFor("composites", index, "context"), fmt.Sprintf("references unknown context %q", comp.Context), nil)
		}
	}
	for _, slot := range sortedKeys(comp.Slots) {
		target := comp.Slots[slot]
		if names[target] != "component" {
			return stylekiterrors.NewValidationError(fmt.Sprintf("composites[%d].slots.%s", index, slot), fmt.Sprintf("references unknown component %q", target), nil)
		}
	}
	return nil
}

// validateNode checks an example node. composites holds the enclosing composites, innermost last.
func validateNode(fam *Family, field string, node NodeSpec, composites []Composite) error {
	set := 0
	for _, v := range []string{node.Component, node.Slot, node.Tag, node.Text} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return stylekiterrors.NewValidationError(field, "exactly one of component, slot, tag or text is required", nil)
	}
	if node.Text != "" && (len(node.Props) > 0 || len(node.Children) > 0) {
		return stylekiterrors.NewValidationError(field, "text nodes take no props or children", nil)
	}

	switch {
	case node.Component != "":
		if composite, ok := findComposite(fam, node.Component); ok {
			composites = append(composites, composite)
		} else if _, ok := findComponent(fam, node.Component); !ok {
			return stylekiterrors.NewValidationError(field+".component", fmt.Sprintf("references unknown component %q", node.Component), nil)
		}
	case node.Slot != "":
		if _, _, err := resolveSlot(fam, node.Slot, composites); err != nil {
			return stylekiterrors.NewValidationError(field+".slot", err.Error(), nil)
		}
	case node.Tag != "":
		if !tagPattern.MatchString(node.Tag) {
			return stylekiterrors.NewValidationError(field+".tag", fmt.Sprintf("invalid tag %q", node.Tag), nil)
		}
	}

	for i, child := range node.Children {
		if err := validateNode(fam, fmt.Sprintf("%s.children[%d]", field, i), child, composites); err != nil {
			return err
		}
	}
	return nil
}

// resolveSlot finds the composite and slot a slot reference names.
func resolveSlot(fam *Family, ref string, composites []Composite) (Composite, string, error) {
	if owner, slot, qualified := strings.Cut(ref, "."); qualified {
		composite, ok := findComposite(fam, owner)
		if !ok {
			return Composite{}, "", fmt.Errorf("references unknown composite %q", owner)
		}
		if _, ok := composite.Slots[slot]; !ok {
			return Composite{}, "", fmt.Errorf("composite %s has no slot %q", owner, slot)
		}
		return composite, slot, nil
	}

	if len(composites) == 0 {
		return Composite{}, "", fmt.Errorf("slot %q is not inside a composite", ref)
	}
	nearest := composites[len(composites)-1]
	if _, ok := nearest.Slots[ref]; !ok {
		return Composite{}, "", fmt.Errorf("composite %s has no slot %q", nearest.Name, ref)
	}
	return nearest, ref, nil
}

func checkDomain(ctx *Context, field, name string, value any) error {
	if ctx == nil || value == nil {
		return nil
	}
	spec, ok := ctx.Field(name)
	if !ok {
		return nil
	}
	if !spec.Domain().Accepts(value) {
		return stylekiterrors.NewValidationError(field, fmt.Sprintf("value %v is outside the %s domain of %s.%s", value, spec.Kind, ctx.Name, name), nil)
	}
	return nil
}

func findComponent(fam *Family, name string) (Component, bool) {
	for _, comp := range fam.Components {
		if comp.Name == name {
			return comp, true
		}
	}
	return Component{}, false
}

func findComposite(fam *Family, name string) (Composite, bool) {
	for _, comp := range fam.Composites {
		if comp.Name == name {
			return comp, true
		}
	}
	return Composite{}, false
}

// convertValidationError normalizes validator errors into stylekit validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return stylekiterrors.NewValidationError(field, msg, err)
	}

	return stylekiterrors.NewValidationError("family", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldFor(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
