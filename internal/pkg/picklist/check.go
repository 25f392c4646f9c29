package picklist

import (
	"context"

	"github.com/umisama/go-regexpcache"

	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
	"github.com/sfpd/picklist-dependency/internal/pkg/validator"
)

// fieldNameRegexp matches "<Object>.<Field>" API names, including namespace prefixes and suffixes like "__c".
const fieldNameRegexp = `^[A-Za-z][A-Za-z0-9_]*\.[A-Za-z][A-Za-z0-9_]*$`

// CheckFieldName checks the fully qualified name of the dependent field.
func CheckFieldName(name string) error {
	if !regexpcache.MustCompile(fieldNameRegexp).MatchString(name) {
		return InvalidFieldNameError{Field: name}
	}
	return nil
}

// CheckDependentField checks that the record exists and it has a dependency configured.
// The extractor must not be invoked if an error is returned.
func CheckDependentField(ctx context.Context, name string, field FieldMetadata) error {
	if field.FullName == "" {
		return FieldNotFoundError{Field: name}
	}

	vs := field.ValueSet
	if vs == nil || vs.ControllingField == "" || len(vs.ValueSettings) == 0 {
		return NoDependencyError{Field: name}
	}

	if err := validator.New().ValidateCtx(ctx, vs, "dive", "valueSet"); err != nil {
		return errors.PrefixErrorf(err, `invalid metadata of field "%s"`, name)
	}

	return nil
}
