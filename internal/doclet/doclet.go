// Package doclet defines the documented-entity record consumed by link resolution
// and the symbol graph that holds those records.
package doclet

import (
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/foundation"
	"git.home.luguber.info/inful/doclinks/internal/util/sets"
)

// Kind is the doclet kind reported by the upstream parser.
type Kind string

const (
	KindClass     Kind = "class"
	KindConstant  Kind = "constant"
	KindEvent     Kind = "event"
	KindExternal  Kind = "external"
	KindFile      Kind = "file"
	KindFunction  Kind = "function"
	KindInterface Kind = "interface"
	KindMember    Kind = "member"
	KindMixin     Kind = "mixin"
	KindModule    Kind = "module"
	KindNamespace Kind = "namespace"
	KindPackage   Kind = "package"
	KindTypedef   Kind = "typedef"
)

// Scope places a symbol relative to its parent.
type Scope string

const (
	ScopeGlobal   Scope = "global"
	ScopeInner    Scope = "inner"
	ScopeInstance Scope = "instance"
	ScopeStatic   Scope = "static"
)

// Access is the declared visibility. The zero value means no access tag was given.
type Access string

const (
	AccessUndefined Access = ""
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
	AccessPackage   Access = "package"
)

// AnonymousMemberof marks symbols declared inside anonymous scopes.
const AnonymousMemberof = "<anonymous>"

// containerKinds own an entire output file.
var containerKinds = sets.New(KindClass, KindModule, KindExternal, KindNamespace, KindMixin, KindInterface)

// IsContainer reports whether symbols of kind k get their own output file.
func IsContainer(k Kind) bool {
	return containerKinds.Has(k)
}

// ScopeToPunc maps a scope to the punctuation used in longnames.
var ScopeToPunc = map[Scope]string{
	ScopeInner:    "~",
	ScopeInstance: "#",
	ScopeStatic:   ".",
}

// TypeInfo lists the type expressions attached to a doclet, parameter or return value.
type TypeInfo struct {
	Names []string `yaml:"names"`
}

// Param describes one documented parameter.
type Param struct {
	Name         string                  `yaml:"name"`
	Type         *TypeInfo               `yaml:"type,omitempty"`
	Description  string                  `yaml:"description,omitempty"`
	Optional     bool                    `yaml:"optional,omitempty"`
	Variable     bool                    `yaml:"variable,omitempty"`
	Nullable     foundation.Option[bool] `yaml:"nullable,omitempty"`
	DefaultValue string                  `yaml:"defaultvalue,omitempty"`
}

// Return describes a documented return or yield value.
type Return struct {
	Type        *TypeInfo               `yaml:"type,omitempty"`
	Description string                  `yaml:"description,omitempty"`
	Nullable    foundation.Option[bool] `yaml:"nullable,omitempty"`
}

// Doclet is a single documented entity. Fields that the upstream parser may omit
// entirely and whose absence differs from their zero value use foundation.Option.
type Doclet struct {
	Longname     string                  `yaml:"longname"`
	Name         string                  `yaml:"name"`
	Kind         Kind                    `yaml:"kind"`
	Scope        Scope                   `yaml:"scope,omitempty"`
	Memberof     string                  `yaml:"memberof,omitempty"`
	Access       Access                  `yaml:"access,omitempty"`
	Variation    string                  `yaml:"variation,omitempty"`
	Description  string                  `yaml:"description,omitempty"`
	Type         *TypeInfo               `yaml:"type,omitempty"`
	Params       []Param                 `yaml:"params,omitempty"`
	Returns      []Return                `yaml:"returns,omitempty"`
	Yields       []Return                `yaml:"yields,omitempty"`
	Listens      []string                `yaml:"listens,omitempty"`
	Authors      []string                `yaml:"author,omitempty"`
	Async        bool                    `yaml:"async,omitempty"`
	Generator    bool                    `yaml:"generator,omitempty"`
	Virtual      bool                    `yaml:"virtual,omitempty"`
	Readonly     bool                    `yaml:"readonly,omitempty"`
	Nullable     foundation.Option[bool] `yaml:"nullable,omitempty"`
	Undocumented bool                    `yaml:"undocumented,omitempty"`
	Ignore       bool                    `yaml:"ignore,omitempty"`

	// Derived during a generation run.
	Listeners       []string `yaml:"listeners,omitempty"`
	ID              string   `yaml:"id,omitempty"`
	Attribs         string   `yaml:"attribs,omitempty"`
	Signature       string   `yaml:"signature,omitempty"`
	DescriptionHTML string   `yaml:"descriptionHtml,omitempty"`
}

// HasMemberof reports whether the doclet names a parent symbol.
func (d *Doclet) HasMemberof() bool {
	return d.Memberof != ""
}

// IsModuleExports reports whether the doclet is the value a module exports as a
// whole (`module.exports = ...`), which is documented on the module's own page.
func (d *Doclet) IsModuleExports() bool {
	return d.Longname != "" && d.Longname == d.Name &&
		strings.HasPrefix(d.Longname, "module:") && d.Kind != KindModule
}

// TypeNames returns the doclet's type expressions, if any.
func (d *Doclet) TypeNames() []string {
	if d.Type == nil {
		return nil
	}
	return d.Type.Names
}
