package cpu

import (
	"iter"
	"regexp"
	"strings"
)

// LabelLookup resolves label names to values.
type LabelLookup interface {
	Lookup(name string) (value int, ok bool)
}

// Label binds a name to an address or constant.
type Label struct {
	Name  string
	Value int
}

// LabelTable is the single, flat label namespace of an assembly unit.
type LabelTable struct {
	labels map[string]int
	order  []string
}

var _ LabelLookup = (*LabelTable)(nil)

var reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidLabel returns an error if name cannot be used as a label.
func ValidLabel(name string) (err error) {
	if !reLabel.MatchString(name) {
		return ErrLabelInvalid(name)
	}
	if IsReserved(strings.ToLower(name)) {
		return ErrLabelReserved(name)
	}
	return nil
}

// Define binds a label. A label is defined exactly once.
func (lt *LabelTable) Define(name string, value int) (err error) {
	err = ValidLabel(name)
	if err != nil {
		return
	}

	if _, ok := lt.labels[name]; ok {
		err = ErrLabelDuplicate(name)
		return
	}

	if lt.labels == nil {
		lt.labels = make(map[string]int, 16)
	}
	lt.labels[name] = value
	lt.order = append(lt.order, name)

	return
}

// Lookup returns the value bound to a label.
func (lt *LabelTable) Lookup(name string) (value int, ok bool) {
	value, ok = lt.labels[name]
	return
}

// Len returns the number of defined labels.
func (lt *LabelTable) Len() int {
	return len(lt.order)
}

// All iterates the labels in definition order.
func (lt *LabelTable) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, name := range lt.order {
			if !yield(name, lt.labels[name]) {
				return
			}
		}
	}
}

// Labels returns the labels in definition order.
func (lt *LabelTable) Labels() (labels []Label) {
	for name, value := range lt.All() {
		labels = append(labels, Label{Name: name, Value: value})
	}
	return
}
