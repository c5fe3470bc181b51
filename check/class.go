package check

import (
	"sync"

	"github.com/saylorsolutions/dbc/syncx"
)

// Checked is implemented by types that declare an instance invariant.
// The guard calls Invariant on the guarded object at entry and exit of public
// functions; a non-nil result is an invariant violation.
//
// Invariant may call other contracted methods of the same object without
// retriggering invariant checks (see the package documentation on
// suppression).
type Checked interface {
	Invariant() error
}

// Class records contract metadata for one concrete type: its place in the base
// hierarchy, whether a static (type-level) invariant is declared, and the
// identity tokens of its virtual methods. Classes are created once at package
// init and shared by every activation.
type Class struct {
	name  string
	bases []*Class

	mux       sync.RWMutex
	staticInv func() error
	methods   map[string]*Method
}

// NewClass declares a class with zero or more bases, in base-list order.
func NewClass(name string, bases ...*Class) *Class {
	return &Class{
		name:    name,
		bases:   bases,
		methods: make(map[string]*Method),
	}
}

func (c *Class) Name() string {
	return c.name
}

// SetStaticInvariant declares a type-level invariant.
// Static invariants are checked at entry and exit of every guarded member
// call, including constructors and destructors, and on both the clean and
// panicking path: unlike instance invariants they do not depend on the object
// being established.
func (c *Class) SetStaticInvariant(fn func() error) {
	syncx.LockFunc(&c.mux, func() {
		c.staticInv = fn
	})
}

func (c *Class) staticInvariant() func() error {
	return syncx.RLockFuncT(&c.mux, func() func() error {
		return c.staticInv
	})
}

// Method returns the identity token for the named virtual method, creating it
// on first use. The same *Method is returned for every call with the same
// name, which is what lets the chain resolver recognize an ancestor contract
// reached through two embedding paths.
func (c *Class) Method(name string) *Method {
	return syncx.LockFuncT(&c.mux, func() *Method {
		m, ok := c.methods[name]
		if !ok {
			m = &Method{class: c, name: name}
			c.methods[name] = m
		}
		return m
	})
}

// extends reports whether other is c or one of c's (transitive) bases.
func (c *Class) extends(other *Class) bool {
	if c == other {
		return true
	}
	for _, b := range c.bases {
		if b.extends(other) {
			return true
		}
	}
	return false
}

// Method identifies one virtual method declaration. Two contracts with the
// same *Method are the same contract for chain deduplication purposes.
type Method struct {
	class *Class
	name  string
}

func (m *Method) String() string {
	return m.class.name + "." + m.name
}

// Suppression depth per object (or per class for activations without an
// object). A nonzero depth means the engine is evaluating a check for that
// scope, and guards constructed inside it stay inert.
var (
	suppressMux   sync.Mutex
	suppressDepth = make(map[any]int)
)

// suppressKey picks the scope an activation's checks are tracked under:
// the object when there is one, so unrelated objects never suppress each
// other, otherwise the class.
func suppressKey(obj any, cls *Class) any {
	if obj != nil {
		return obj
	}
	if cls != nil {
		return cls
	}
	return nil
}

func isChecking(key any) bool {
	return syncx.LockFuncT(&suppressMux, func() bool {
		return suppressDepth[key] > 0
	})
}

func raiseChecking(key any) {
	syncx.LockFunc(&suppressMux, func() {
		suppressDepth[key]++
	})
}

func lowerChecking(key any) {
	syncx.LockFunc(&suppressMux, func() {
		if d := suppressDepth[key] - 1; d > 0 {
			suppressDepth[key] = d
		} else {
			delete(suppressDepth, key)
		}
	})
}
