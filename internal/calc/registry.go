package calc

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrArity            = errors.New("wrong number of arguments")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Kind описывает тип результата операции
type Kind string

const (
	KindVec1   Kind = "vec1"
	KindScalar Kind = "scalar"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindVec2   Kind = "vec2"
	KindVec3   Kind = "vec3"
	KindVec4   Kind = "vec4"
)

// Output - значение, вычисленное операцией
type Output struct {
	Values []Number
	Text   string
}

// Operation описывает именованную операцию над Vec1
type Operation struct {
	Name        string `json:"name"`
	Arity       int    `json:"arity"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`

	Apply func(args []float64) (Output, error) `json:"-"`
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Operation)
)

// Register добавляет операцию в регистр, заменяя операцию с тем же именем
func Register(op Operation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[op.Name] = op
}

// Get возвращает операцию по имени
func Get(name string) (Operation, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, exists := registry[name]
	return op, exists
}

// Operations возвращает все операции, отсортированные по имени
func Operations() []Operation {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ops := make([]Operation, 0, len(registry))
	for _, op := range registry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Names возвращает отсортированные имена операций
func Names() []string {
	ops := Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}
