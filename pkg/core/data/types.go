// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package data

import (
	"reflect"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Type is an opaque tag naming one representation type: either a matrix backend (its instances
// implement Data) or a scalar output type.
//
// Types are created with Register, during package initialization, and are never instantiated
// by the test engine: they are only used as catalog keys, to label test cases and to check the
// runtime type of the results of an operation.
type Type struct {
	name   string
	goType reflect.Type
	dtype  dtypes.DType
	isData bool
}

var (
	dataInterface   = reflect.TypeFor[Data]()
	registeredTypes = make(map[string]*Type)
)

// Register a representation type with the given name, for Go type T, storing elements of dtype.
//
// It must be called during initialization of a package, it panics if the name is already in use.
func Register[T any](name string, dtype dtypes.DType) *Type {
	if _, found := registeredTypes[name]; found {
		exceptions.Panicf("data.Register(%q): type name already registered", name)
	}
	goType := reflect.TypeFor[T]()
	t := &Type{
		name:   name,
		goType: goType,
		dtype:  dtype,
		isData: goType.Implements(dataInterface),
	}
	registeredTypes[name] = t
	return t
}

// Complex128 is the scalar output type of operations like trace.
var Complex128 = Register[complex128]("complex128", dtypes.Complex128)

// ByName returns the registered type with the given name.
func ByName(name string) (*Type, error) {
	t, found := registeredTypes[name]
	if !found {
		return nil, errors.Errorf("unknown representation type %q, registered types are: %s", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Types returns all registered types, sorted by name.
func Types() []*Type {
	types := make([]*Type, 0, len(registeredTypes))
	for _, t := range registeredTypes {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b *Type) int { return strings.Compare(a.name, b.name) })
	return types
}

// Names of all registered types, sorted.
func Names() []string {
	names := make([]string, 0, len(registeredTypes))
	for name := range registeredTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Name of the type, used in test case identifiers.
func (t *Type) Name() string { return t.name }

// String implements fmt.Stringer.
func (t *Type) String() string { return t.name }

// GoType returns the Go runtime type of the instances.
func (t *Type) GoType() reflect.Type { return t.goType }

// DType returns the dtype of the elements.
func (t *Type) DType() dtypes.DType { return t.dtype }

// IsData returns whether the instances are tensor-like (implement Data), as opposed to scalars.
func (t *Type) IsData() bool { return t.isData }

// Is returns whether value's runtime type is exactly this type.
func (t *Type) Is(value any) bool {
	return value != nil && reflect.TypeOf(value) == t.goType
}
