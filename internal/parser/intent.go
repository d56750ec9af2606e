package parser

import "strings"

// Operation is the action a clause requests against the order.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpRemove
	OpReplace
)

func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	default:
		return "none"
	}
}

var (
	removeTriggers = []string{"remove", "delete", "get rid of", "i don't want", "i dont want"}

	replaceTriggers = []string{"replace", "change", "instead"}

	addTriggers = []string{"add", "i want", "i'd like", "id like", "can i get", "give me", "i'll have", "ill have", "let me get"}

	// replaceSplitters separate the old-item reference from the new item
	// inside a replace clause.
	replaceSplitters = map[string]bool{"to": true, "with": true, "instead": true}
)

// Classify assigns a clause its operation by keyword triggers, checked
// remove -> replace -> add. A clause with no trigger inherits prev, the
// operation carried from earlier clauses of the same utterance; the
// first clause of an utterance defaults to add.
func Classify(clause string, prev Operation) Operation {
	lowered := strings.ToLower(clause)
	switch {
	case containsAny(lowered, removeTriggers):
		return OpRemove
	case containsAny(lowered, replaceTriggers):
		return OpReplace
	case containsAny(lowered, addTriggers):
		return OpAdd
	}
	if prev != OpNone {
		return prev
	}
	return OpAdd
}

// SplitReplace splits a replace clause on the first "to"/"with"/
// "instead" token that leaves text on both sides: old-item reference
// before, new item after.
func SplitReplace(clause string) (oldRef, newRef string, ok bool) {
	words := strings.Fields(strings.ToLower(clause))
	for i, word := range words {
		if !replaceSplitters[strings.Trim(word, ",.?!")] {
			continue
		}
		before := strings.Join(words[:i], " ")
		after := strings.Join(words[i+1:], " ")
		if before != "" && after != "" {
			return before, after, true
		}
	}
	return "", "", false
}

func containsAny(text string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}
